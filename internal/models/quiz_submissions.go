package models

// QuizSubmission is the demographic questionnaire a user submits for
// eligibility matching. It has no identity of its own; it is only
// persisted as part of a SubmissionRecord.
type QuizSubmission struct {
	Age        int    `json:"age" bson:"age"`
	Gender     string `json:"gender" bson:"gender"`
	State      string `json:"state" bson:"state"`
	Area       string `json:"area" bson:"area"`
	Income     string `json:"income" bson:"income"`
	Occupation string `json:"occupation" bson:"occupation"`
	Education  string `json:"education" bson:"education"`
	Category   string `json:"category" bson:"category"`
	HasLand    string `json:"has_land" bson:"has_land"`
	IsDisabled string `json:"is_disabled" bson:"is_disabled"`
}

// SubmissionRecord is the audit document written for every evaluation.
// It is write-only: nothing in the service reads it back.
type SubmissionRecord struct {
	QuizSubmission `bson:",inline"`
	UserID         string `bson:"user_id" json:"user_id"`
	SubmittedAt    string `bson:"submitted_at" json:"submitted_at"`
}
