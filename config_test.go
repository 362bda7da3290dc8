package utfall

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultTableName, cfg.Table)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, defaultUserAgent, cfg.UserAgent)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, defaultBaseDirName, filepath.Base(cfg.BaseDir))
	assert.True(t, filepath.IsAbs(cfg.BaseDir))
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := LoadConfigFromEnvironment(map[string]string{
		"UTFALL_BASE_DIR":     dir,
		"UTFALL_ENDPOINT":     "https://example.com/utf_all.csv.gz",
		"UTFALL_TABLE":        "zipcodes",
		"UTFALL_BATCH_SIZE":   "500",
		"UTFALL_HTTP_TIMEOUT": "30s",
		"UTFALL_USER_AGENT":   "mirror/2.0",
		"UTFALL_LOG_LEVEL":    "DEBUG",
		"UTFALL_LOG_FORMAT":   "JSON",
	})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, "zipcodes", cfg.Table)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "mirror/2.0", cfg.UserAgent)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	assert.Equal(t, filepath.Join(dir, "last-modified"), cfg.MarkerPath())
	assert.Equal(t, filepath.Join(dir, "data.csv.gz"), cfg.DataPath())
	assert.Equal(t, filepath.Join(dir, "data.sqlite"), cfg.DatabasePath())
}

func TestLoadConfigFromEnvironment_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ map[string]string
		invalid bool
	}{
		{name: "zero batch size", environ: map[string]string{"UTFALL_BATCH_SIZE": "0"}, invalid: true},
		{name: "negative timeout", environ: map[string]string{"UTFALL_HTTP_TIMEOUT": "-1s"}, invalid: true},
		{name: "endpoint is not a url", environ: map[string]string{"UTFALL_ENDPOINT": "not a url"}, invalid: true},
		{name: "reserved table name", environ: map[string]string{"UTFALL_TABLE": "sqlite_sequence"}, invalid: true},
		{name: "unknown log level", environ: map[string]string{"UTFALL_LOG_LEVEL": "verbose"}, invalid: true},
		{name: "unknown log format", environ: map[string]string{"UTFALL_LOG_FORMAT": "xml"}, invalid: true},
		{name: "batch size is not a number", environ: map[string]string{"UTFALL_BATCH_SIZE": "many"}},
		{name: "timeout is not a duration", environ: map[string]string{"UTFALL_HTTP_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.environ["UTFALL_BASE_DIR"] = t.TempDir()
			_, err := LoadConfigFromEnvironment(tt.environ)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg, err := DefaultConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.BaseDir = "  "
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
