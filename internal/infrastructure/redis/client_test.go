package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/networth/internal/infrastructure/retry"
)

func fastConnector() *retry.Connector {
	c := retry.NewConnector(20*time.Millisecond, zerolog.Nop())
	c.InitialInterval = time.Millisecond
	c.MaxInterval = 5 * time.Millisecond
	return c
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0", fastConnector())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, ClientName, client.Options().ClientName)
	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewClient_Errors(t *testing.T) {
	down := miniredis.RunT(t)
	downURL := "redis://" + down.Addr()
	down.Close()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"malformed url", "://bad-url", "parse redis URL"},
		{"wrong scheme", "http://localhost:6379", "parse redis URL"},
		{"server down", downURL, "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(context.Background(), tt.url, fastConnector())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
