package graphql

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/blogql/internal/logging"
	"github.com/dmitrijs2005/blogql/internal/server/auth"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recLogger records every entry; children share the parent's buffer.
type recLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
}

func newRecLogger() *recLogger {
	return &recLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *recLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *recLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }

func (l *recLogger) With(...any) logging.Logger { return l }

func (l *recLogger) find(msg string) *logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range *l.entries {
		if (*l.entries)[i].msg == msg {
			e := (*l.entries)[i]
			return &e
		}
	}
	return nil
}

func (e *logEntry) arg(key string) any {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1]
		}
	}
	return nil
}

type fakeUserService struct {
	mu     sync.Mutex
	seen   []auth.Identity
	signup services.SignupInput

	authOut *services.AuthPayload
	authErr error

	me    *models.User
	meErr error

	users map[int64]*models.User

	profile    *services.ProfileView
	profileErr error
	profileIDs []int64

	panicOnMe bool
}

func (f *fakeUserService) saw(id auth.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, id)
}

func (f *fakeUserService) Signup(ctx context.Context, in services.SignupInput) (*services.AuthPayload, error) {
	f.signup = in
	return f.authOut, f.authErr
}

func (f *fakeUserService) Signin(ctx context.Context, email, password string) (*services.AuthPayload, error) {
	f.signup = services.SignupInput{Email: email, Password: password}
	return f.authOut, f.authErr
}

func (f *fakeUserService) Me(ctx context.Context, id auth.Identity) (*models.User, error) {
	if f.panicOnMe {
		panic("me exploded")
	}
	f.saw(id)
	if !id.Authenticated() {
		return nil, f.meErr
	}
	return f.me, f.meErr
}

func (f *fakeUserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserService) Profile(ctx context.Context, id auth.Identity, userID int64) (*services.ProfileView, error) {
	f.saw(id)
	f.mu.Lock()
	f.profileIDs = append(f.profileIDs, userID)
	f.mu.Unlock()
	return f.profile, f.profileErr
}

type postCall struct {
	op     string
	id     auth.Identity
	postID int64
	in     services.PostInput
}

type fakePostService struct {
	mu    sync.Mutex
	calls []postCall

	out    *services.PostPayload
	outErr error

	published []*models.Post
	byAuthor  map[int64][]*models.Post
	listErr   error
}

func (f *fakePostService) record(c postCall) (*services.PostPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.out, f.outErr
}

func (f *fakePostService) Create(ctx context.Context, id auth.Identity, in services.PostInput) (*services.PostPayload, error) {
	return f.record(postCall{op: "create", id: id, in: in})
}

func (f *fakePostService) Update(ctx context.Context, id auth.Identity, postID int64, in services.PostInput) (*services.PostPayload, error) {
	return f.record(postCall{op: "update", id: id, postID: postID, in: in})
}

func (f *fakePostService) Delete(ctx context.Context, id auth.Identity, postID int64) (*services.PostPayload, error) {
	return f.record(postCall{op: "delete", id: id, postID: postID})
}

func (f *fakePostService) Publish(ctx context.Context, id auth.Identity, postID int64) (*services.PostPayload, error) {
	return f.record(postCall{op: "publish", id: id, postID: postID})
}

func (f *fakePostService) Unpublish(ctx context.Context, id auth.Identity, postID int64) (*services.PostPayload, error) {
	return f.record(postCall{op: "unpublish", id: id, postID: postID})
}

func (f *fakePostService) Published(ctx context.Context) ([]*models.Post, error) {
	return f.published, f.listErr
}

func (f *fakePostService) ByAuthor(ctx context.Context, id auth.Identity, authorID int64) ([]*models.Post, error) {
	f.mu.Lock()
	f.calls = append(f.calls, postCall{op: "byAuthor", id: id, postID: authorID})
	f.mu.Unlock()
	return f.byAuthor[authorID], f.listErr
}
