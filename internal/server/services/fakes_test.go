package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/blogql/internal/common"
	"github.com/dmitrijs2005/blogql/internal/dbx"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogql/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/blogql/internal/server/repositories/users"
)

// fakeStore is an in-memory stand-in for the three tables. errs injects a
// failure for an operation named "<table>.<Method>".
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	users    map[int64]*models.User
	profiles map[int64]*models.Profile
	posts    map[int64]*models.Post
	errs     map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[int64]*models.User{},
		profiles: map[int64]*models.Profile{},
		posts:    map[int64]*models.Post{},
		errs:     map[string]error{},
	}
}

func (s *fakeStore) fail(op string) error {
	return s.errs[op]
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

// addPost inserts a post directly, bypassing the service.
func (s *fakeStore) addPost(authorID int64, title string, published bool) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Post{ID: s.id(), Title: title, Content: title + " body", Published: published, CreatedAt: s.tick(), AuthorID: authorID}
	s.posts[p.ID] = p
	cp := *p
	return &cp
}

func (s *fakeStore) post(id int64) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range f.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = f.s.id()
	u.CreatedAt = f.s.tick()
	cp := *u
	f.s.users[u.ID] = &cp
	return u, nil
}

func (f fakeUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := f.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range f.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeProfiles struct{ s *fakeStore }

func (f fakeProfiles) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("profiles.Create"); err != nil {
		return nil, err
	}
	if _, ok := f.s.profiles[p.UserID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	p.ID = f.s.id()
	cp := *p
	f.s.profiles[p.UserID] = &cp
	return p, nil
}

func (f fakeProfiles) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("profiles.GetByUserID"); err != nil {
		return nil, err
	}
	p, ok := f.s.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

type fakePosts struct{ s *fakeStore }

func (f fakePosts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("posts.Create"); err != nil {
		return nil, err
	}
	p.ID = f.s.id()
	p.CreatedAt = f.s.tick()
	p.Published = false
	cp := *p
	f.s.posts[p.ID] = &cp
	return p, nil
}

func (f fakePosts) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("posts.GetByID"); err != nil {
		return nil, err
	}
	p, ok := f.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakePosts) modify(op string, id int64, fn func(p *models.Post)) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail(op); err != nil {
		return nil, err
	}
	p, ok := f.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(p)
	cp := *p
	return &cp, nil
}

func (f fakePosts) Update(ctx context.Context, id int64, title, content *string) (*models.Post, error) {
	return f.modify("posts.Update", id, func(p *models.Post) {
		if title != nil {
			p.Title = *title
		}
		if content != nil {
			p.Content = *content
		}
	})
}

func (f fakePosts) SetPublished(ctx context.Context, id int64, published bool) (*models.Post, error) {
	return f.modify("posts.SetPublished", id, func(p *models.Post) { p.Published = published })
}

func (f fakePosts) Delete(ctx context.Context, id int64) (*models.Post, error) {
	p, err := f.modify("posts.Delete", id, func(*models.Post) {})
	if err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	delete(f.s.posts, id)
	f.s.mu.Unlock()
	return p, nil
}

func (f fakePosts) list(op string, keep func(p *models.Post) bool) ([]*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail(op); err != nil {
		return nil, err
	}
	out := make([]*models.Post, 0)
	for _, p := range f.s.posts {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f fakePosts) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return f.list("posts.ListPublished", func(p *models.Post) bool { return p.Published })
}

func (f fakePosts) ListByAuthor(ctx context.Context, authorID int64, includeUnpublished bool) ([]*models.Post, error) {
	return f.list("posts.ListByAuthor", func(p *models.Post) bool {
		return p.AuthorID == authorID && (p.Published || includeUnpublished)
	})
}

type fakeRepoManager struct{ s *fakeStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return fakeUsers{m.s} }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository     { return fakeProfiles{m.s} }
func (m *fakeRepoManager) Posts(db dbx.DBTX) posts.Repository           { return fakePosts{m.s} }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

