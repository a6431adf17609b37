package http

import (
	"errors"
	"net/http"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChatHandler handles HTTP requests for the RAG chat.
type ChatHandler struct {
	chatService service.ChatService
	logger      *logger.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers the chat routes to the Echo group.
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Chat)
}

// Chat godoc
// @Summary Ask the stock advisor
// @Description Send a chat message; the answer is grounded in prior conversation turns
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   message  body    dto.ChatRequest   true    "User message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	result, err := h.chatService.Chat(c.Request().Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
		}
		h.logger.Error("Chat request failed", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}

	// A nil answer means generation failed after the user turn was
	// persisted; that is a degraded success, not an error.
	return c.JSON(http.StatusOK, dto.ChatResponse{Response: result.Answer})
}
