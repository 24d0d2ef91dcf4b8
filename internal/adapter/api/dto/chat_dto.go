package dto

import (
	"github.com/VS237/momshop/pkg/chat"
)

// ChatRequest is a message for the shop assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant's reply with the recent conversation
type ChatResponse struct {
	Response string         `json:"response"`
	History  []chat.Message `json:"history"`
}

// NewChatResponse builds a reply, never with a nil history
func NewChatResponse(response string, history []chat.Message) ChatResponse {
	if history == nil {
		history = []chat.Message{}
	}
	return ChatResponse{
		Response: response,
		History:  history,
	}
}
