package handlers

import (
	"net/http"

	"mentora/services/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the post-session messaging window.
type ChatHandler struct {
	Svc    chat.ChatService
	Logger *zap.Logger
}

func NewChatHandler(svc chat.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

// Open returns the booking's chat session, creating it on first request.
// Opening is idempotent.
func (h *ChatHandler) Open(c *gin.Context) {
	session, err := h.Svc.Open(c.Request.Context(), c.Param("bookingID"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// PostMessage appends a message to the session while the window is open.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	msg, err := h.Svc.PostMessage(c.Request.Context(), c.Param("sessionID"), currentActor(c).ID, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessages returns the session history.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	msgs, err := h.Svc.ListMessages(c.Request.Context(), c.Param("sessionID"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
