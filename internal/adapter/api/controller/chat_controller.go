package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/assistant"
	"github.com/VS237/momshop/pkg/logger"
)

// ChatController exposes the shop assistant to staff
type ChatController struct {
	assistant *assistant.Client
	logger    logger.Logger
}

// NewChatController creates a ChatController
func NewChatController(assistant *assistant.Client, logger logger.Logger) *ChatController {
	return &ChatController{
		assistant: assistant,
		logger:    logger,
	}
}

// SendMessage asks the assistant a question
// @Summary Ask the assistant
// @Description Sends a message with the recent conversation and the current inventory, and returns the reply with the updated history
// @Tags chat
// @Accept json
// @Produce json
// @Param message body dto.ChatRequest true "Message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var request dto.ChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	userID := actorOf(ctx).UserID
	if userID == "" {
		respondError(ctx, c.logger, service.ErrUnauthenticated)
		return
	}

	reply, err := c.assistant.Reply(ctx.Request.Context(), userID, request.Message)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	history, err := c.assistant.History(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Warn("error loading chat history", "user_id", userID, "error", err)
	}
	ctx.JSON(http.StatusOK, dto.NewChatResponse(reply, history))
}

// History returns the caller's conversation, newest first
// @Summary Chat history
// @Tags chat
// @Produce json
// @Success 200 {array} chat.Message
// @Security BearerAuth
// @Router /chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	history, err := c.assistant.History(ctx.Request.Context(), actorOf(ctx).UserID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewChatResponse("", history).History)
}

// ClearHistory forgets the caller's conversation
// @Summary Clear chat history
// @Tags chat
// @Success 204
// @Security BearerAuth
// @Router /chat/history [delete]
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	if err := c.assistant.ClearHistory(ctx.Request.Context(), actorOf(ctx).UserID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
