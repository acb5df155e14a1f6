package models

// SavedScheme is a per-user bookmark relation. Identity is the
// (user_id, scheme_id) pair; at most one record exists per pair.
type SavedScheme struct {
	UserID   string `json:"user_id" bson:"user_id"`
	SchemeID string `json:"scheme_id" bson:"scheme_id"`
	SavedAt  string `json:"saved_at" bson:"saved_at"`
}
