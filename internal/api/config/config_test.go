package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(t.TempDir()))

	assert.Equal(t, 8080, Cfg.Server.Port)
	assert.Equal(t, "mysql", Cfg.DB.Driver)
	assert.Equal(t, 1600, Cfg.Media.MaxImageWidth)
	assert.Equal(t, "0 0 * * * *", Cfg.Media.CleanupSpec)
	assert.True(t, Cfg.DB.AutoMigrate)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("database:\n  driver: postgres\n  dsn: \"host=db\"\nmedia:\n  max_image_width: 800\njwt:\n  secret: from-file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("BLOG_JWT_SECRET", "from-env")
	t.Setenv("BLOG_DATABASE_DSN", "host=override")

	require.NoError(t, LoadConfig(dir))
	assert.Equal(t, "postgres", Cfg.DB.Driver)
	assert.Equal(t, "host=override", Cfg.DB.DSN)
	assert.Equal(t, 800, Cfg.Media.MaxImageWidth)
	assert.Equal(t, "from-env", Cfg.JWT.Secret)
}

func TestLoadConfigRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))
	assert.Error(t, LoadConfig(dir))
}
