package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/pkg/chat"
	"github.com/VS237/momshop/pkg/logger"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveMessage(ctx context.Context, message *chat.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockRepository) GetUserHistory(ctx context.Context, userID string, limit, offset int) ([]chat.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]chat.Message), args.Error(1)
}

func (m *MockRepository) DeleteUserHistory(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) CountUserMessages(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type staticInventory string

func (s staticInventory) InventorySummary(context.Context) (string, error) {
	return string(s), nil
}

func completionServer(t *testing.T, status int, reply string, seen *completionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"model": "test-model",
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": reply}},
				},
			})
		}
	}))
}

func TestReply(t *testing.T) {
	userMsg := func(m *chat.Message) bool { return m.Role == chat.RoleUser && m.Content == "Do you sell rice?" }
	botMsg := func(m *chat.Message) bool { return m.Role == chat.RoleAssistant && m.Content == "Yes, 5kg bags." }

	tests := []struct {
		name       string
		apiKey     string
		message    string
		status     int
		setupMocks func(repo *MockRepository)
		wantReply  string
		wantErr    error
		anyErr     bool
	}{
		{
			name:       "empty message",
			apiKey:     "key",
			message:    "   ",
			setupMocks: func(repo *MockRepository) {},
			wantErr:    ErrEmptyMessage,
		},
		{
			name:       "not configured",
			message:    "hello",
			setupMocks: func(repo *MockRepository) {},
			wantErr:    ErrNotConfigured,
		},
		{
			name:    "success",
			apiKey:  "key",
			message: "Do you sell rice?",
			status:  http.StatusOK,
			setupMocks: func(repo *MockRepository) {
				repo.On("SaveMessage", mock.Anything, mock.MatchedBy(userMsg)).Return(nil).Once()
				repo.On("GetUserHistory", mock.Anything, "u1", historyWindow, 0).Return([]chat.Message{
					{Role: chat.RoleUser, Content: "Do you sell rice?"},
					{Role: chat.RoleAssistant, Content: "Hello!"},
					{Role: chat.RoleUser, Content: "Hi"},
				}, nil)
				repo.On("SaveMessage", mock.Anything, mock.MatchedBy(botMsg)).Return(nil).Once()
			},
			wantReply: "Yes, 5kg bags.",
		},
		{
			name:    "api failure",
			apiKey:  "key",
			message: "Do you sell rice?",
			status:  http.StatusTooManyRequests,
			setupMocks: func(repo *MockRepository) {
				repo.On("SaveMessage", mock.Anything, mock.MatchedBy(userMsg)).Return(nil).Once()
				repo.On("GetUserHistory", mock.Anything, "u1", historyWindow, 0).Return(nil, errors.New("db down"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			var seen completionRequest
			srv := completionServer(t, tt.status, "Yes, 5kg bags.", &seen)
			defer srv.Close()

			client := NewClient(Config{
				APIKey:   tt.apiKey,
				BaseURL:  srv.URL + "/",
				Model:    "test-model",
				ShopName: "MomShop",
				Facts:    []string{"Delivery: 1,000 XAF within the city."},
				Support:  "+237 600 000 000",
			}, repo, staticInventory("- Rice 5kg: 5000 XAF (Stock: 12 bag)"), logger.NewNop())

			reply, err := client.Reply(context.Background(), "u1", tt.message)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantReply, reply)

				require.Len(t, seen.Messages, 4)
				assert.Equal(t, chat.RoleSystem, seen.Messages[0].Role)
				assert.Contains(t, seen.Messages[0].Content, "Rice 5kg")
				assert.Contains(t, seen.Messages[0].Content, "+237 600 000 000")
				assert.Equal(t, "Hi", seen.Messages[1].Content)
				assert.Equal(t, "Do you sell rice?", seen.Messages[3].Content)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestHistoryAndClear(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserHistory", mock.Anything, "u1", maxHistory, 0).Return([]chat.Message{{Content: "hi"}}, nil)
	repo.On("DeleteUserHistory", mock.Anything, "u1").Return(nil)

	client := NewClient(Config{}, repo, nil, logger.NewNop())

	history, err := client.History(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	require.NoError(t, client.ClearHistory(context.Background(), "u1"))
	repo.AssertExpectations(t)
}
