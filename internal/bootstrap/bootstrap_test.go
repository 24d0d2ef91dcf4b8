package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/adapter/memory"
	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/mocks"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{name: "memory", driver: "memory"},
		{name: "memory alias", driver: "mem"},
		{name: "unknown driver", driver: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{Store: config.Store{Driver: tt.driver}}

			st, err := OpenStore(context.Background(), cfg, false, logger.NewNop())
			if tt.wantErr {
				var unknown *store.ErrUnknownDriver
				assert.ErrorAs(t, err, &unknown)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &memory.Store{}, st)
			assert.NoError(t, st.Ping(context.Background()))
		})
	}
}

func TestOpenCartStore_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	carts, err := OpenCartStore(ctx, config.Redis{CartTTL: time.Hour}, logger.NewNop())
	require.NoError(t, err)
	defer carts.Close()

	c := cart.New()
	require.NoError(t, c.Add("p1", 2))
	require.NoError(t, carts.Save(ctx, "s1", c))

	loaded, err := carts.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Count())
}

func TestOpenPublisher_WithoutURL(t *testing.T) {
	pub := OpenPublisher(config.AMQP{}, logger.NewNop())
	assert.IsType(t, &messaging.LogPublisher{}, pub)
}

func TestNewServices(t *testing.T) {
	v := config.NewViper()
	v.Set("STORE_DRIVER", "memory")
	v.Set("DEEPSEEK_API_KEY", "")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	st, err := OpenStore(context.Background(), *cfg, false, logger.NewNop())
	require.NoError(t, err)

	svc := NewServices(*cfg, st, nil, messaging.NewLogPublisher(logger.NewNop()), &mocks.MockTokenIssuer{}, logger.NewNop())
	assert.NotNil(t, svc.Auth)
	assert.NotNil(t, svc.Fulfillment)
	assert.NotNil(t, svc.Reports)
	assert.False(t, svc.Assistant.Configured())
}
