package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapi/internal/domain"
	"taskapi/internal/service"
)

type ctxKey string

// contextUserKey holds the authenticated, password-free user for downstream handlers.
const contextUserKey ctxKey = "auth.user"

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

// UserFromContext returns the user stored by WithUser, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(contextUserKey).(*domain.User)
	return user, ok && user != nil
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	return UserFromContext(c.Request.Context())
}

// requireSession resolves the session cookie to a user or aborts with 401.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.opts.CookieName)
		if err != nil || token == "" {
			respondError(c, http.StatusUnauthorized, "Access token not found in cookies")
			c.Abort()
			return
		}

		claims, err := h.tokens.Parse(token)
		if err != nil {
			h.log.WithError(err).Debug("rejecting session token")
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				respondError(c, http.StatusUnauthorized, "User not found")
			} else {
				h.fail(c, err, "Internal server error")
			}
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}
