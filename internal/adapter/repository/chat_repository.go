package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VS237/momshop/pkg/chat"
)

type ChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) chat.Repository {
	return &ChatRepository{
		db: db,
	}
}

func (r *ChatRepository) SaveMessage(ctx context.Context, message *chat.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO chat_history (id, user_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		message.ID,
		message.UserID,
		message.Role,
		message.Content,
		message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("error saving chat message: %w", err)
	}

	return nil
}

func (r *ChatRepository) GetUserHistory(ctx context.Context, userID string, limit, offset int) ([]chat.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, role, content, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error loading chat history: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("error reading chat message: %w", err)
		}
		msg.UserID = userID
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return messages, nil
}

func (r *ChatRepository) DeleteUserHistory(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM chat_history WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting chat history: %w", err)
	}
	return nil
}

func (r *ChatRepository) CountUserMessages(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_history WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting chat messages: %w", err)
	}
	return count, nil
}
