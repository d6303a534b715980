package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CETEN-BDE/bot-discord/internal/correlate"
	"github.com/CETEN-BDE/bot-discord/internal/logger"
	"github.com/CETEN-BDE/bot-discord/internal/verify"
)

// Handler exposes the three-endpoint web surface of the verification
// flow. All responses to end users are short and non-diagnostic; full
// error detail goes to the operator log only.
type Handler struct {
	flow *verify.Controller
}

func NewHandler(flow *verify.Controller) *Handler {
	return &Handler{flow: flow}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/login", h.login)
	r.GET("/auth/callback", h.callback)
	r.GET("/auth/failure", h.failure)
}

func (h *Handler) login(c *gin.Context) {
	userID := c.Query("userId")
	guildID := c.Query("guildId")

	if userID == "" || guildID == "" {
		c.String(http.StatusBadRequest, "Missing userId or guildId parameters")
		return
	}

	authURL, err := h.flow.Begin(userID, guildID)
	if err != nil {
		logger.Error("failed to begin verification flow", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "An error occurred during authentication.")
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) callback(c *gin.Context) {
	// Provider-side denial (user cancelled, consent rejected) arrives
	// as an error parameter instead of a code.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"error": errParam,
			"desc":  c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, "/auth/failure")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Missing authorization code.")
		return
	}

	_, err := h.flow.Complete(c.Request.Context(), c.Query("state"), code)
	switch {
	case err == nil:
		c.String(http.StatusOK, "Authentication successful! You can close this window now.")
	case errors.Is(err, correlate.ErrMalformed):
		c.String(http.StatusBadRequest, "Missing Discord user ID or guild ID.")
	case errors.Is(err, verify.ErrAuthentication):
		c.Redirect(http.StatusFound, "/auth/failure")
	default:
		logger.Error("error in callback", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "An error occurred during authentication.")
	}
}

func (h *Handler) failure(c *gin.Context) {
	c.String(http.StatusOK, "Authentication failed. Please try again.")
}
