package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnings(t *testing.T) {
	t.Run("clean dev config", func(t *testing.T) {
		cfg := &Config{Environment: "dev", JWTSecret: "short"}
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("example secrets", func(t *testing.T) {
		cfg := &Config{
			Environment: "dev",
			JWTSecret:   ExampleJWTSecret,
			DBHost:      "localhost",
			DBPassword:  ExampleDBPassword,
		}
		warnings := cfg.Warnings()
		require.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "JWT_SECRET")
		assert.Contains(t, warnings[1], "DB_PASSWORD")
	})

	t.Run("production without database and short secret", func(t *testing.T) {
		cfg := &Config{Environment: "prod", JWTSecret: "short"}
		warnings := cfg.Warnings()
		require.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "shorter than")
		assert.Contains(t, warnings[1], "DB_HOST")
	})
}
