package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsReachStruct(t *testing.T) {
	// point at a file that does not exist so only defaults apply
	t.Setenv("SUNNY_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	require.Equal(t, "http://localhost:5173", cfg.API.AssetBaseURL)
	require.Equal(t, "AZ,CA,TX,FL,NY", cfg.Form.TargetStates)
	require.Equal(t, "Sunny Home", cfg.Form.BrandName)
	require.Equal(t, "CN", cfg.Form.Language)
	require.False(t, cfg.Form.UseAI)
	require.Equal(t, 8, cfg.Form.AILimit)
	require.True(t, strings.HasSuffix(cfg.History.Path, filepath.Join("sunny", "history.db")))
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := strings.Join([]string{
		"[api]",
		`base_url = "http://backend:9000"`,
		"",
		"[form]",
		`brand_name = "Acme Home"`,
		"use_ai = true",
		"ai_limit = 3",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("SUNNY_CONFIG", path)
	t.Setenv("SUNNY_API_ASSET_BASE_URL", "http://assets:9173")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://backend:9000", cfg.API.BaseURL)
	require.Equal(t, "http://assets:9173", cfg.API.AssetBaseURL)
	require.Equal(t, "Acme Home", cfg.Form.BrandName)
	require.True(t, cfg.Form.UseAI)
	require.Equal(t, 3, cfg.Form.AILimit)
	// keys absent from the file keep their defaults
	require.Equal(t, "AZ,CA,TX,FL,NY", cfg.Form.TargetStates)
	require.Equal(t, "CN", cfg.Form.Language)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SUNNY_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.API.BaseURL = "http://backend:9000"
	cfg.Form.Language = "EN"
	cfg.Form.AILimit = 12
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://backend:9000", got.API.BaseURL)
	require.Equal(t, "EN", got.Form.Language)
	require.Equal(t, 12, got.Form.AILimit)
	require.Equal(t, cfg.Form.BrandName, got.Form.BrandName)
}
