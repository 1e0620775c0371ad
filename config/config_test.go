package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("/nonexistent/revline.yml")
	assert.Equal(t, "revline", cfg.System.Appid)
	assert.Equal(t, 1880, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigYamlOverlay(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "revline.yml")
	require.NoError(t, os.WriteFile(cfile, []byte("web:\n  port: 9001\n"), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, 9001, cfg.Web.Port)
	// untouched sections keep defaults
	assert.Equal(t, "revline", cfg.System.Appid)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("REVLINE_WEB_PORT", "9100")
	t.Setenv("REVLINE_DB_HOST", "db.internal")

	cfg := LoadConfig("/nonexistent/revline.yml")
	assert.Equal(t, 9100, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}
