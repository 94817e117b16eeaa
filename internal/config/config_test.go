package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Defaults fill what the file leaves out", func(t *testing.T) {
		// Given: a config file that only sets the endpoint and redis host
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  endpoint: ws://game.test/ws\nredis:\n  host: cache\n"), 0o600))

		// When: it is loaded
		conf := MustLoad(path)

		// Then: every other field has its default
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "ws://game.test/ws", conf.Server.Endpoint)
		assert.Equal(t, 5*time.Second, conf.Server.DialTimeout)
		assert.Equal(t, 30, conf.Game.TurnSeconds)
		assert.Equal(t, "local", conf.Profile.ID)
		assert.True(t, conf.Redis.Enabled())
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}

func TestMustLoadEnv(t *testing.T) {
	t.Setenv("TURN_SECONDS", "12")
	t.Setenv("SERVER_ENDPOINT", "ws://env.test/ws")

	conf := MustLoadEnv()

	assert.Equal(t, 12, conf.Game.TurnSeconds)
	assert.Equal(t, "ws://env.test/ws", conf.Server.Endpoint)
	assert.False(t, conf.Redis.Enabled())
}
