package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_FILE", filepath.Join(t.TempDir(), "meeting.db"))
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LLM_PROVIDER", "none")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AutoMigrate is enabled in production")
	assert.Contains(t, err.Error(), "--service meeting")
}

func TestRun_RejectsInvalidConfiguration(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
