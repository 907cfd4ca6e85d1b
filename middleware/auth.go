// Package middleware holds the gin middleware shared by every route: session
// loading, login enforcement, CORS and request ids.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/CUknot/forum_backend/database"
	"github.com/CUknot/forum_backend/models"
	"github.com/CUknot/forum_backend/sessions"
	"github.com/CUknot/forum_backend/utils"
	"github.com/gin-gonic/gin"
)

const (
	userKey      = "user"
	sessionIDKey = "sessionID"

	DefaultCookieName = "forum_session"
)

// UserFinder loads the account behind a session.
type UserFinder interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

// Auth issues and resolves session cookies.
type Auth struct {
	Sessions   sessions.Store
	Users      UserFinder
	Tokens     *utils.TokenCodec
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func (a *Auth) cookieName() string {
	if a.CookieName == "" {
		return DefaultCookieName
	}
	return a.CookieName
}

func (a *Auth) ttl() time.Duration {
	if a.TTL <= 0 {
		return 14 * 24 * time.Hour
	}
	return a.TTL
}

func (a *Auth) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName(), value, maxAge, "/", "", a.Secure, true)
}

// Login starts a session for user and sets the session cookie.
func (a *Auth) Login(c *gin.Context, user *models.User) error {
	session, err := a.Sessions.Create(c.Request.Context(), user.ID, a.ttl())
	if err != nil {
		return err
	}
	token, err := a.Tokens.GenerateToken(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		_ = a.Sessions.Delete(c.Request.Context(), session.ID)
		return err
	}
	a.setCookie(c, token, int(a.ttl().Seconds()))
	c.Set(userKey, user)
	c.Set(sessionIDKey, session.ID)
	return nil
}

// Logout ends the current session, if any, and clears the cookie.
func (a *Auth) Logout(c *gin.Context) error {
	a.setCookie(c, "", -1)
	sid := c.GetString(sessionIDKey)
	c.Set(userKey, nil)
	if sid == "" {
		return nil
	}
	return a.Sessions.Delete(c.Request.Context(), sid)
}

// LoadSession resolves the session cookie into the current user. Requests
// without a valid session continue anonymously.
func (a *Auth) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(a.cookieName())
		if err != nil || raw == "" {
			c.Next()
			return
		}

		user, sid, err := a.resolve(c.Request.Context(), raw)
		if err != nil {
			// Only a dead session clears the cookie. A failing backend
			// leaves it for the next request.
			if errors.Is(err, sessions.ErrSessionNotFound) {
				a.setCookie(c, "", -1)
			} else {
				log.Printf("Session lookup failed: %v", err)
			}
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

func (a *Auth) resolve(ctx context.Context, raw string) (*models.User, string, error) {
	claims, err := a.Tokens.ParseToken(raw)
	if err != nil {
		return nil, "", sessions.ErrSessionNotFound
	}
	session, err := a.Sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, "", err
	}
	if session.UserID != claims.UserID {
		return nil, "", sessions.ErrSessionNotFound
	}
	user, err := a.Users.UserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, "", sessions.ErrSessionNotFound
		}
		return nil, "", fmt.Errorf("failed to load session user: %w", err)
	}
	return user, session.ID, nil
}

// CurrentUser returns the authenticated user, or false for anonymous requests.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// LoginURL is where anonymous users are sent, remembering where they were going.
func LoginURL(next string) string {
	if next == "" {
		return "/login/"
	}
	return "/login/?next=" + url.QueryEscape(next)
}

// RedirectToLogin aborts the request with a redirect to the login page.
func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
	c.Abort()
}

// RequireAuth redirects anonymous users to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			RedirectToLogin(c)
			return
		}
		c.Next()
	}
}
