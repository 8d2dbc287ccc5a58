package models

// Profile is the one-to-one public profile of a User.
type Profile struct {
	ID     int64
	Bio    string
	UserID int64
}
