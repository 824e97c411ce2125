package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adilzhan/studentlife-auth/internal/domain"
	api "github.com/adilzhan/studentlife-auth/internal/http"
	applog "github.com/adilzhan/studentlife-auth/internal/log"
	"github.com/adilzhan/studentlife-auth/internal/oauth"
	"github.com/adilzhan/studentlife-auth/internal/queue"
	"github.com/adilzhan/studentlife-auth/internal/session"
)

// fakeUsers implements api.UserStore in memory with the same
// lookup-or-create semantics as the Mongo store.
type fakeUsers struct {
	mu       sync.Mutex
	byGoogle map[string]*domain.User
	byID     map[primitive.ObjectID]*domain.User
	fail     bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byGoogle: make(map[string]*domain.User),
		byID:     make(map[primitive.ObjectID]*domain.User),
	}
}

func (f *fakeUsers) FindOrCreateUser(ctx context.Context, p *oauth.Profile) (*domain.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, false, errors.New("store down")
	}
	if u, ok := f.byGoogle[p.Sub]; ok {
		return u, false, nil
	}
	name := p.GivenName
	if name == "" {
		name = p.Name
	}
	u := &domain.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		PinNumber: p.FamilyName,
		Email:     p.Email,
		GoogleID:  p.Sub,
		CreatedAt: time.Now().UTC(),
	}
	f.byGoogle[p.Sub] = u
	f.byID[u.ID] = u
	return u, true, nil
}

func (f *fakeUsers) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("store down")
	}
	return f.byID[id], nil
}

func (f *fakeUsers) Ping(ctx context.Context) error { return nil }

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byGoogle)
}

// fakeGoogle hands out canned profiles keyed by authorization code.
type fakeGoogle struct {
	profiles map[string]*oauth.Profile
}

func (g *fakeGoogle) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}
func (g *fakeGoogle) MakeState(raw string) string { return raw + ".sig" }
func (g *fakeGoogle) VerifyState(s string) bool   { return strings.HasSuffix(s, ".sig") }
func (g *fakeGoogle) ExchangeAndVerify(ctx context.Context, code string) (*oauth.Profile, error) {
	p, ok := g.profiles[code]
	if !ok {
		return nil, errors.New("invalid code")
	}
	return p, nil
}

type testEnv struct {
	Users    *fakeUsers
	Google   *fakeGoogle
	Sessions *session.Manager
	Router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := applog.Init(false); err != nil {
		t.Fatalf("log init: %v", err)
	}

	users := newFakeUsers()
	google := &fakeGoogle{profiles: map[string]*oauth.Profile{
		"code-ana": {
			Sub:        "g123",
			Email:      "ana@x.com",
			GivenName:  "Ana",
			FamilyName: "Lee",
			Name:       "Ana Lee",
		},
	}}
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)

	gin.SetMode(gin.TestMode)
	h := api.NewHandler(users, sessions, google, queue.NewNoop(), "testdata", 0)
	return &testEnv{Users: users, Google: google, Sessions: sessions, Router: api.NewRouter(h)}
}

func (e *testEnv) get(path string, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

// sessionCookie pulls the sid cookie out of a callback response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sid" && ck.Value != "" {
			return fmt.Sprintf("sid=%s", ck.Value)
		}
	}
	t.Fatalf("no sid cookie in response; headers=%v", w.Header())
	return ""
}
