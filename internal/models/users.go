package models

// User is the persisted account document. Records are immutable after
// signup; there are no update or delete paths.
type User struct {
	ID           string `json:"id" bson:"id"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password"`
	Name         string `json:"name" bson:"name"`
	CreatedAt    string `json:"created_at" bson:"created_at"`
}

// PublicUser is the response-safe projection of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips the password hash and creation metadata for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
