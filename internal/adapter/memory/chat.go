package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VS237/momshop/pkg/chat"
)

type chatRepo struct {
	db access
}

func (r *chatRepo) SaveMessage(ctx context.Context, m *chat.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return r.db.write(func(st *state) error {
		st.messages = append(st.messages, *m)
		return nil
	})
}

func (r *chatRepo) GetUserHistory(ctx context.Context, userID string, limit, offset int) ([]chat.Message, error) {
	var out []chat.Message
	err := r.db.read(func(st *state) error {
		var mine []chat.Message
		for i := len(st.messages) - 1; i >= 0; i-- {
			if st.messages[i].UserID == userID {
				mine = append(mine, st.messages[i])
			}
		}
		out = paginate(mine, limit, offset)
		return nil
	})
	return out, err
}

func (r *chatRepo) DeleteUserHistory(ctx context.Context, userID string) error {
	return r.db.write(func(st *state) error {
		kept := st.messages[:0:0]
		for _, m := range st.messages {
			if m.UserID != userID {
				kept = append(kept, m)
			}
		}
		st.messages = kept
		return nil
	})
}

func (r *chatRepo) CountUserMessages(ctx context.Context, userID string) (int, error) {
	count := 0
	err := r.db.read(func(st *state) error {
		for _, m := range st.messages {
			if m.UserID == userID {
				count++
			}
		}
		return nil
	})
	return count, err
}
