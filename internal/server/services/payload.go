package services

import "github.com/dmitrijs2005/blogql/internal/server/models"

// Messages returned to clients in userErrors. Clients match on these strings,
// so they must not change.
const (
	MsgUnauthenticated    = "Forbidden access(unauthenticated)"
	MsgPostNotFound       = "Post doesn't exists"
	MsgPostNotOwned       = "Post does not belong to you"
	MsgPostCreateFields   = "You must provide title and a content to create a post"
	MsgPostUpdateFields   = "You must provide title or content to update a post"
	MsgInvalidEmail       = "Invalid email"
	MsgInvalidPassword    = "Invalid password"
	MsgInvalidNameOrBio   = "Invalid name or bio"
	MsgInvalidCredentials = "Invalid Credentials"
	MsgEmailTaken         = "Email already in use"
)

// UserError is a client-caused failure reported inside a payload.
type UserError struct {
	Message string
}

// AuthPayload is the result of signup and signin. Token is nil whenever
// UserErrors is non-empty.
type AuthPayload struct {
	UserErrors []UserError
	Token      *string
}

// PostPayload is the result of every post mutation. Post is nil whenever
// UserErrors is non-empty.
type PostPayload struct {
	UserErrors []UserError
	Post       *models.Post
}

// ProfileView is a profile as seen by a particular caller.
type ProfileView struct {
	Profile     *models.Profile
	IsMyProfile bool
}

func authFailure(msg string) *AuthPayload {
	return &AuthPayload{UserErrors: []UserError{{Message: msg}}}
}

func authSuccess(token string) *AuthPayload {
	return &AuthPayload{UserErrors: []UserError{}, Token: &token}
}

func postFailure(msg string) *PostPayload {
	return &PostPayload{UserErrors: []UserError{{Message: msg}}}
}

func postSuccess(post *models.Post) *PostPayload {
	return &PostPayload{UserErrors: []UserError{}, Post: post}
}
