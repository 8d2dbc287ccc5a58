package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogql/internal/common"
	"github.com/dmitrijs2005/blogql/internal/server/auth"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/repositories/repomanager"
)

// PostInput carries the optional fields of postCreate and postUpdate.
// An empty string counts as not supplied.
type PostInput struct {
	Title   *string
	Content *string
}

func (in PostInput) title() *string   { return nonEmpty(in.Title) }
func (in PostInput) content() *string { return nonEmpty(in.Content) }

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// PostService implements the post mutations and listings. Every mutation
// other than Create goes through CheckMutationPermission.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// CheckMutationPermission decides whether userID may change post postID.
// When it may, the loaded post is returned so callers need not read it again;
// otherwise denied holds the payload to hand back to the client. A missing
// post is reported as "doesn't exists", a foreign one as "does not belong to
// you".
func (s *PostService) CheckMutationPermission(ctx context.Context, userID, postID int64) (post *models.Post, denied *PostPayload, err error) {
	post, err = s.repomanager.Posts(s.db).GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, postFailure(MsgPostNotFound), nil
		}
		return nil, nil, fmt.Errorf("error loading post: %w", err)
	}
	if post.AuthorID != userID {
		return nil, postFailure(MsgPostNotOwned), nil
	}
	return post, nil, nil
}

// authorize runs the identity and ownership checks shared by all mutations
// on an existing post.
func (s *PostService) authorize(ctx context.Context, id auth.Identity, postID int64) (*models.Post, *PostPayload, error) {
	userID, ok := id.UserID()
	if !ok {
		return nil, postFailure(MsgUnauthenticated), nil
	}
	return s.CheckMutationPermission(ctx, userID, postID)
}

// Create stores a new unpublished post authored by the caller.
func (s *PostService) Create(ctx context.Context, id auth.Identity, in PostInput) (*PostPayload, error) {
	userID, ok := id.UserID()
	if !ok {
		return postFailure(MsgUnauthenticated), nil
	}
	title, content := in.title(), in.content()
	if title == nil || content == nil {
		return postFailure(MsgPostCreateFields), nil
	}

	post, err := s.repomanager.Posts(s.db).Create(ctx, &models.Post{Title: *title, Content: *content, AuthorID: userID})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return postSuccess(post), nil
}

// Update applies the supplied fields of in to the caller's post.
func (s *PostService) Update(ctx context.Context, id auth.Identity, postID int64, in PostInput) (*PostPayload, error) {
	if _, denied, err := s.authorize(ctx, id, postID); denied != nil || err != nil {
		return denied, err
	}

	title, content := in.title(), in.content()
	if title == nil && content == nil {
		return postFailure(MsgPostUpdateFields), nil
	}

	post, err := s.repomanager.Posts(s.db).Update(ctx, postID, title, content)
	return s.mutationResult(post, err)
}

// Delete removes the caller's post and returns it as it was.
func (s *PostService) Delete(ctx context.Context, id auth.Identity, postID int64) (*PostPayload, error) {
	if _, denied, err := s.authorize(ctx, id, postID); denied != nil || err != nil {
		return denied, err
	}

	post, err := s.repomanager.Posts(s.db).Delete(ctx, postID)
	return s.mutationResult(post, err)
}

// Publish marks the caller's post as published. Publishing twice is not an
// error.
func (s *PostService) Publish(ctx context.Context, id auth.Identity, postID int64) (*PostPayload, error) {
	return s.setPublished(ctx, id, postID, true)
}

// Unpublish turns the caller's post back into a draft.
func (s *PostService) Unpublish(ctx context.Context, id auth.Identity, postID int64) (*PostPayload, error) {
	return s.setPublished(ctx, id, postID, false)
}

func (s *PostService) setPublished(ctx context.Context, id auth.Identity, postID int64, published bool) (*PostPayload, error) {
	if _, denied, err := s.authorize(ctx, id, postID); denied != nil || err != nil {
		return denied, err
	}

	post, err := s.repomanager.Posts(s.db).SetPublished(ctx, postID, published)
	return s.mutationResult(post, err)
}

// mutationResult maps the outcome of a write on an existing post. The post
// may have vanished between the permission check and the write.
func (s *PostService) mutationResult(post *models.Post, err error) (*PostPayload, error) {
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return postFailure(MsgPostNotFound), nil
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	return postSuccess(post), nil
}

// Published lists all published posts, newest first.
func (s *PostService) Published(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListPublished(ctx)
}

// ByAuthor lists the posts of authorID, newest first. Authors see their own
// drafts; everybody else only sees published posts.
func (s *PostService) ByAuthor(ctx context.Context, id auth.Identity, authorID int64) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListByAuthor(ctx, authorID, id.Is(authorID))
}
