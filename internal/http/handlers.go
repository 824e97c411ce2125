package http

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/adilzhan/studentlife-auth/internal/domain"
	applog "github.com/adilzhan/studentlife-auth/internal/log"
	"github.com/adilzhan/studentlife-auth/internal/metrics"
	"github.com/adilzhan/studentlife-auth/internal/oauth"
	"github.com/adilzhan/studentlife-auth/internal/queue"
	"github.com/adilzhan/studentlife-auth/internal/session"
)

// UserStore is the persistence surface the handlers need.
type UserStore interface {
	FindOrCreateUser(ctx context.Context, p *oauth.Profile) (*domain.User, bool, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Ping(ctx context.Context) error
}

// GoogleVerifier is the two-step provider handshake: build the consent URL,
// then exchange the callback code for a verified profile.
type GoogleVerifier interface {
	AuthURL(state string) string
	MakeState(raw string) string
	VerifyState(state string) bool
	ExchangeAndVerify(ctx context.Context, code string) (*oauth.Profile, error)
}

type Handler struct {
	Users           UserStore
	Sessions        *session.Manager
	Google          GoogleVerifier
	Events          queue.Publisher
	StaticDir       string
	RateLimitPerMin int
}

func NewHandler(users UserStore, sessions *session.Manager, google GoogleVerifier,
	pub queue.Publisher, staticDir string, rlPerMin int) *Handler {
	return &Handler{
		Users:           users,
		Sessions:        sessions,
		Google:          google,
		Events:          pub,
		StaticDir:       staticDir,
		RateLimitPerMin: rlPerMin,
	}
}

// Index serves the static login entry page unconditionally.
func (h *Handler) Index(c *gin.Context) {
	c.File(filepath.Join(h.StaticDir, "login.html"))
}

// AuthStatus godoc
// @Summary Whether the request carries a valid authenticated session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/status [get]
func (h *Handler) AuthStatus(c *gin.Context) {
	_, ok := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": ok})
}

// GoogleLogin godoc
// @Summary Redirect to the Google consent screen
// @Tags auth
// @Success 302
// @Router /auth/google [get]
func (h *Handler) GoogleLogin(c *gin.Context) {
	state := h.Google.MakeState(uuid.NewString())
	c.Redirect(http.StatusFound, h.Google.AuthURL(state))
}

// GoogleCallback godoc
// @Summary Complete the Google handshake and establish a session
// @Tags auth
// @Success 302
// @Failure 500 {object} map[string]string
// @Router /auth/google/callback [get]
func (h *Handler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()
	l := applog.WithDD(ctx, applog.L)

	state := c.Query("state")
	code := c.Query("code")
	stateOK := h.Google.VerifyState(state)
	if !stateOK || code == "" {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		l.Warn("callback rejected", zap.Bool("state_ok", stateOK))
		c.Redirect(http.StatusFound, "/")
		return
	}

	profile, err := h.Google.ExchangeAndVerify(ctx, code)
	if err != nil {
		// provider failure and user denial look the same to the browser
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		l.Warn("google exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	u, created, err := h.Users.FindOrCreateUser(ctx, profile)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		l.Error("find or create user", zap.Error(err), zap.String("google_id", profile.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user store failure"})
		return
	}

	token, err := h.Sessions.Establish(ctx, u.ID.Hex())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		l.Error("establish session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session failure"})
		return
	}
	setSessionCookie(c, token, h.Sessions.TTL())

	reqID := requestID(c)
	if created {
		metrics.SignupsTotal.Inc()
		go h.Events.Publish(context.Background(), queue.Exchange, "user.signedup",
			queue.UserSignedUp{UserID: u.ID, Email: u.Email, Name: u.Name}, reqID)
	}
	go h.Events.Publish(context.Background(), queue.Exchange, "user.loggedin",
		queue.UserLoggedIn{UserID: u.ID, Email: u.Email}, reqID)

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	c.Redirect(http.StatusFound, "/success")
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Success 302
// @Router /logout [get]
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if u, ok := currentUser(c); ok {
		go h.Events.Publish(context.Background(), queue.Exchange, "user.loggedout",
			queue.UserLoggedOut{UserID: u.ID}, requestID(c))
	}

	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		if err := h.Sessions.Destroy(ctx, token); err != nil {
			// best effort: the user still ends at /
			applog.WithDD(ctx, applog.L).Error("destroy session", zap.Error(err))
		}
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// Success returns the protected landing payload, or bounces to /.
func (h *Handler) Success(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.String(http.StatusOK, "Hello World")
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Users.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
