package graphql

import (
	"context"

	"github.com/dmitrijs2005/blogql/internal/server/auth"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/services"
)

type userService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.AuthPayload, error)
	Signin(ctx context.Context, email, password string) (*services.AuthPayload, error)
	Me(ctx context.Context, id auth.Identity) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	Profile(ctx context.Context, id auth.Identity, userID int64) (*services.ProfileView, error)
}

type postService interface {
	Create(ctx context.Context, id auth.Identity, in services.PostInput) (*services.PostPayload, error)
	Update(ctx context.Context, id auth.Identity, postID int64, in services.PostInput) (*services.PostPayload, error)
	Delete(ctx context.Context, id auth.Identity, postID int64) (*services.PostPayload, error)
	Publish(ctx context.Context, id auth.Identity, postID int64) (*services.PostPayload, error)
	Unpublish(ctx context.Context, id auth.Identity, postID int64) (*services.PostPayload, error)
	Published(ctx context.Context) ([]*models.Post, error)
	ByAuthor(ctx context.Context, id auth.Identity, authorID int64) ([]*models.Post, error)
}
