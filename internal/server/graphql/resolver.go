package graphql

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/blogql/internal/common"
	"github.com/dmitrijs2005/blogql/internal/logging"
	"github.com/dmitrijs2005/blogql/internal/server/auth"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root resolver for both Query and Mutation. Every root field
// reads the caller's identity from the request context once and hands it to
// the services and to the nested resolvers it creates.
type Resolver struct {
	users  userService
	posts  postService
	logger logging.Logger
}

type credentialsInput struct {
	Email    string
	Password string
}

type postInput struct {
	Title   *string
	Content *string
}

func (in postInput) toService() services.PostInput {
	return services.PostInput{Title: in.Title, Content: in.Content}
}

// parseID converts a GraphQL ID into a row id. Row ids start at 1, so a
// malformed ID maps to 0 and resolves to nothing.
func parseID(id graphql.ID) int64 {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formatID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}

// internal logs a store failure and hides its details from the client.
func (r *Resolver) internal(ctx context.Context, op string, err error) error {
	r.logger.Error(ctx, "resolver failed", "op", op, "error", err, "request_id", requestIDFromContext(ctx))
	return common.ErrorInternal
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	u, err := r.users.Me(ctx, viewer)
	if err != nil {
		return nil, r.internal(ctx, "me", err)
	}
	return r.newUser(viewer, u), nil
}

func (r *Resolver) Profile(ctx context.Context, args struct{ UserID graphql.ID }) (*profileResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	userID := parseID(args.UserID)
	if userID == 0 {
		return nil, nil
	}
	v, err := r.users.Profile(ctx, viewer, userID)
	if err != nil {
		return nil, r.internal(ctx, "profile", err)
	}
	return r.newProfile(viewer, v), nil
}

func (r *Resolver) Posts(ctx context.Context) ([]*postResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	posts, err := r.posts.Published(ctx)
	if err != nil {
		return nil, r.internal(ctx, "posts", err)
	}
	return r.newPosts(viewer, posts), nil
}

func (r *Resolver) Signup(ctx context.Context, args struct {
	Credentials credentialsInput
	Name        string
	Bio         string
}) (*authPayloadResolver, error) {
	p, err := r.users.Signup(ctx, services.SignupInput{
		Name:     args.Name,
		Bio:      args.Bio,
		Email:    args.Credentials.Email,
		Password: args.Credentials.Password,
	})
	if err != nil {
		return nil, r.internal(ctx, "signup", err)
	}
	return &authPayloadResolver{p: p}, nil
}

func (r *Resolver) Signin(ctx context.Context, args struct{ Credentials credentialsInput }) (*authPayloadResolver, error) {
	p, err := r.users.Signin(ctx, args.Credentials.Email, args.Credentials.Password)
	if err != nil {
		return nil, r.internal(ctx, "signin", err)
	}
	return &authPayloadResolver{p: p}, nil
}

func (r *Resolver) PostCreate(ctx context.Context, args struct{ Post postInput }) (*postPayloadResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	p, err := r.posts.Create(ctx, viewer, args.Post.toService())
	return r.postPayload(ctx, "postCreate", viewer, p, err)
}

func (r *Resolver) PostUpdate(ctx context.Context, args struct {
	PostID graphql.ID
	Post   postInput
}) (*postPayloadResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	p, err := r.posts.Update(ctx, viewer, parseID(args.PostID), args.Post.toService())
	return r.postPayload(ctx, "postUpdate", viewer, p, err)
}

type postIDArgs struct {
	PostID graphql.ID
}

func (r *Resolver) PostDelete(ctx context.Context, args postIDArgs) (*postPayloadResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	p, err := r.posts.Delete(ctx, viewer, parseID(args.PostID))
	return r.postPayload(ctx, "postDelete", viewer, p, err)
}

func (r *Resolver) PostPublish(ctx context.Context, args postIDArgs) (*postPayloadResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	p, err := r.posts.Publish(ctx, viewer, parseID(args.PostID))
	return r.postPayload(ctx, "postPublish", viewer, p, err)
}

func (r *Resolver) PostUnpublish(ctx context.Context, args postIDArgs) (*postPayloadResolver, error) {
	viewer := auth.IdentityFromContext(ctx)
	p, err := r.posts.Unpublish(ctx, viewer, parseID(args.PostID))
	return r.postPayload(ctx, "postUnpublish", viewer, p, err)
}

func (r *Resolver) postPayload(ctx context.Context, op string, viewer auth.Identity, p *services.PostPayload, err error) (*postPayloadResolver, error) {
	if err != nil {
		return nil, r.internal(ctx, op, err)
	}
	return &postPayloadResolver{r: r, viewer: viewer, p: p}, nil
}

func (r *Resolver) newUser(viewer auth.Identity, u *models.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{r: r, viewer: viewer, u: u}
}

func (r *Resolver) newProfile(viewer auth.Identity, v *services.ProfileView) *profileResolver {
	if v == nil {
		return nil
	}
	return &profileResolver{r: r, viewer: viewer, v: v}
}

func (r *Resolver) newPost(viewer auth.Identity, p *models.Post) *postResolver {
	if p == nil {
		return nil
	}
	return &postResolver{r: r, viewer: viewer, p: p}
}

func (r *Resolver) newPosts(viewer auth.Identity, posts []*models.Post) []*postResolver {
	out := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		out = append(out, r.newPost(viewer, p))
	}
	return out
}
