package graphql

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blogql/internal/server/auth"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type userResolver struct {
	r      *Resolver
	viewer auth.Identity
	u      *models.User
}

func (u *userResolver) ID() graphql.ID    { return formatID(u.u.ID) }
func (u *userResolver) Name() string      { return u.u.Name }
func (u *userResolver) Email() string     { return u.u.Email }
func (u *userResolver) CreatedAt() string { return formatTime(u.u.CreatedAt) }

func (u *userResolver) Profile(ctx context.Context) (*profileResolver, error) {
	v, err := u.r.users.Profile(ctx, u.viewer, u.u.ID)
	if err != nil {
		return nil, u.r.internal(ctx, "user.profile", err)
	}
	return u.r.newProfile(u.viewer, v), nil
}

// Posts lists the user's posts. Drafts are only included when the viewer is
// the user.
func (u *userResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := u.r.posts.ByAuthor(ctx, u.viewer, u.u.ID)
	if err != nil {
		return nil, u.r.internal(ctx, "user.posts", err)
	}
	return u.r.newPosts(u.viewer, posts), nil
}

type profileResolver struct {
	r      *Resolver
	viewer auth.Identity
	v      *services.ProfileView
}

func (p *profileResolver) ID() graphql.ID    { return formatID(p.v.Profile.ID) }
func (p *profileResolver) Bio() string       { return p.v.Profile.Bio }
func (p *profileResolver) IsMyProfile() bool { return p.v.IsMyProfile }

func (p *profileResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := p.r.users.GetUser(ctx, p.v.Profile.UserID)
	if err != nil {
		return nil, p.r.internal(ctx, "profile.user", err)
	}
	return p.r.newUser(p.viewer, u), nil
}

type postResolver struct {
	r      *Resolver
	viewer auth.Identity
	p      *models.Post
}

func (p *postResolver) ID() graphql.ID    { return formatID(p.p.ID) }
func (p *postResolver) Title() string     { return p.p.Title }
func (p *postResolver) Content() string   { return p.p.Content }
func (p *postResolver) CreatedAt() string { return formatTime(p.p.CreatedAt) }
func (p *postResolver) Published() bool   { return p.p.Published }

func (p *postResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := p.r.users.GetUser(ctx, p.p.AuthorID)
	if err != nil {
		return nil, p.r.internal(ctx, "post.user", err)
	}
	return p.r.newUser(p.viewer, u), nil
}

type userErrorResolver struct {
	e services.UserError
}

func (e *userErrorResolver) Message() string { return e.e.Message }

func newUserErrors(errs []services.UserError) []*userErrorResolver {
	out := make([]*userErrorResolver, 0, len(errs))
	for _, e := range errs {
		out = append(out, &userErrorResolver{e: e})
	}
	return out
}

type authPayloadResolver struct {
	p *services.AuthPayload
}

func (a *authPayloadResolver) UserErrors() []*userErrorResolver { return newUserErrors(a.p.UserErrors) }
func (a *authPayloadResolver) Token() *string                   { return a.p.Token }

type postPayloadResolver struct {
	r      *Resolver
	viewer auth.Identity
	p      *services.PostPayload
}

func (p *postPayloadResolver) UserErrors() []*userErrorResolver { return newUserErrors(p.p.UserErrors) }

func (p *postPayloadResolver) Post() *postResolver {
	return p.r.newPost(p.viewer, p.p.Post)
}
