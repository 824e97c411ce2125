package http_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func isAuthenticated(t *testing.T, body []byte) bool {
	t.Helper()
	var resp struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("status body parse: %v; body=%s", err, body)
	}
	return resp.IsAuthenticated
}

func Test_GoogleFlow_LoginStatusSuccessLogout(t *testing.T) {
	env := newTestEnv(t)

	// anonymous status
	w := env.get("/auth/status", "")
	if w.Code != http.StatusOK || isAuthenticated(t, w.Body.Bytes()) {
		t.Fatalf("fresh status: code=%d body=%s", w.Code, w.Body.String())
	}

	// login initiation redirects to the consent screen with a signed state
	w = env.get("/auth/google", "")
	if w.Code != http.StatusFound {
		t.Fatalf("login code=%d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") || !strings.Contains(loc, "state=") {
		t.Fatalf("unexpected consent redirect: %s", loc)
	}

	// provider callback establishes a session and lands on /success
	w = env.get("/auth/google/callback?state=abc.sig&code=code-ana", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/success" {
		t.Fatalf("callback: code=%d loc=%s body=%s", w.Code, w.Header().Get("Location"), w.Body.String())
	}
	cookie := sessionCookie(t, w)

	w = env.get("/auth/status", cookie)
	if !isAuthenticated(t, w.Body.Bytes()) {
		t.Fatalf("status after callback should be authenticated: %s", w.Body.String())
	}

	w = env.get("/success", cookie)
	if w.Code != http.StatusOK || w.Body.String() != "Hello World" {
		t.Fatalf("success: code=%d body=%q", w.Code, w.Body.String())
	}

	// logout always ends at /
	w = env.get("/logout", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("logout: code=%d loc=%s", w.Code, w.Header().Get("Location"))
	}

	w = env.get("/auth/status", cookie)
	if isAuthenticated(t, w.Body.Bytes()) {
		t.Fatalf("status after logout should be unauthenticated")
	}
}

func Test_Callback_FirstLoginCreatesUserOnce(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/auth/google/callback?state=s1.sig&code=code-ana", "")
	if w.Code != http.StatusFound {
		t.Fatalf("first callback: %d", w.Code)
	}
	if env.Users.count() != 1 {
		t.Fatalf("want 1 user after first login, got %d", env.Users.count())
	}
	u := env.Users.byGoogle["g123"]
	if u.Name != "Ana" || u.PinNumber != "Lee" || u.Email != "ana@x.com" || u.GoogleID != "g123" {
		t.Fatalf("user fields: %+v", u)
	}

	// same subject again: no duplicate, stored fields untouched
	w = env.get("/auth/google/callback?state=s2.sig&code=code-ana", "")
	if w.Code != http.StatusFound {
		t.Fatalf("second callback: %d", w.Code)
	}
	if env.Users.count() != 1 {
		t.Fatalf("want 1 user after repeat login, got %d", env.Users.count())
	}
	if got := env.Users.byGoogle["g123"]; got.ID != u.ID || got.Name != "Ana" {
		t.Fatalf("user mutated on repeat login: %+v", got)
	}
}

func Test_Callback_HandshakeFailureRedirectsHome(t *testing.T) {
	env := newTestEnv(t)

	// tampered state
	w := env.get("/auth/google/callback?state=forged&code=code-ana", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("bad state: code=%d loc=%s", w.Code, w.Header().Get("Location"))
	}

	// unknown code (provider rejected the exchange)
	w = env.get("/auth/google/callback?state=ok.sig&code=nope", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("bad code: code=%d loc=%s", w.Code, w.Header().Get("Location"))
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("failed callback must not set cookies: %v", w.Result().Cookies())
	}
	if env.Users.count() != 0 {
		t.Fatalf("failed callback must not create users")
	}
}

func Test_Callback_StoreFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.Users.fail = true

	w := env.get("/auth/google/callback?state=s.sig&code=code-ana", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("store failure: code=%d body=%s", w.Code, w.Body.String())
	}
}

func Test_Success_WithoutSessionRedirects(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/success", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("success unauth: code=%d loc=%s", w.Code, w.Header().Get("Location"))
	}

	// stale cookie behaves the same
	w = env.get("/success", "sid=not-a-live-session")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("success stale: code=%d loc=%s", w.Code, w.Header().Get("Location"))
	}
}

func Test_Status_IsSideEffectFree(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		w := env.get("/auth/status", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status poll %d: %d", i, w.Code)
		}
	}
	if env.Users.count() != 0 {
		t.Fatalf("status must not create users")
	}

	w := env.get("/auth/google/callback?state=s.sig&code=code-ana", "")
	cookie := sessionCookie(t, w)
	for i := 0; i < 5; i++ {
		w = env.get("/auth/status", cookie)
		if !isAuthenticated(t, w.Body.Bytes()) {
			t.Fatalf("authenticated status flipped on poll %d", i)
		}
	}
	if env.Users.count() != 1 {
		t.Fatalf("status polling changed the store")
	}
}

func Test_Index_ServesLoginPage(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Sign in with Google") {
		t.Fatalf("index: code=%d body=%s", w.Code, w.Body.String())
	}
}

func Test_Healthz(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: %d %s", w.Code, w.Body.String())
	}
}
