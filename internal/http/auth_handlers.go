package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskapi/internal/service"
)

// Credentials are decoded loosely so that missing fields and non-string
// values can be reported separately.
type registerRequest struct {
	Name     any `json:"name"`
	Email    any `json:"email"`
	Password any `json:"password"`
}

type loginRequest struct {
	Email    any `json:"email"`
	Password any `json:"password"`
}

type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	if blank(req.Name) || blank(req.Email) || blank(req.Password) {
		respondError(c, http.StatusBadRequest, "Please fill all the fields")
		return
	}
	name, okName := req.Name.(string)
	email, okEmail := req.Email.(string)
	password, okPassword := req.Password.(string)
	if !okName || !okEmail || !okPassword {
		respondError(c, http.StatusBadRequest, "Please send string values only")
		return
	}

	if _, err := h.users.Register(c.Request.Context(), name, email, password); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusBadRequest, "This email is already registered")
		default:
			h.internalError(c, err)
		}
		return
	}

	respond(c, http.StatusOK, "Congratulations!! Account has been created for you..", nil)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	if blank(req.Email) || blank(req.Password) {
		respondError(c, http.StatusBadRequest, "Please enter all details!!")
		return
	}
	email, okEmail := req.Email.(string)
	password, okPassword := req.Password.(string)
	if !okEmail || !okPassword {
		respondError(c, http.StatusBadRequest, "Please send string values only")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrUserNotRegistered):
			respondError(c, http.StatusBadRequest, "This email is not registered!!")
		case errors.Is(err, service.ErrIncorrectPassword):
			respondError(c, http.StatusBadRequest, "Password incorrect!!")
		default:
			h.internalError(c, err)
		}
		return
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		h.internalError(c, err)
		return
	}
	h.setAuthCookie(c, token, time.Until(expiresAt))

	respond(c, http.StatusOK, "Login successful..", gin.H{
		"token": token,
		"user": UserResponse{
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

// setAuthCookie writes the session cookie; a negative maxAge deletes it.
func (h *Handler) setAuthCookie(c *gin.Context, token string, maxAge time.Duration) {
	seconds := int(maxAge.Seconds())
	if maxAge < 0 {
		seconds = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, seconds, "/", "", h.opts.CookieSecure, h.opts.CookieHTTPOnly)
}

// blank mirrors JSON falsiness: absent, null, "", false and 0 all count as missing.
func blank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	}
	return false
}
