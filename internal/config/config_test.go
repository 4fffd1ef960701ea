package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8006/graphql/", cfg.GraphQLEndpoint)
	assert.Equal(t, 30, cfg.HTTPTimeoutSeconds)
	assert.Equal(t, 300, cfg.ScanDebounceMillis)
	assert.Equal(t, "development", cfg.Env)
	assert.Empty(t, cfg.SubsidiaryID)
	assert.NotEmpty(t, cfg.TokenDir)
	assert.NotEmpty(t, cfg.ReceiptStoragePath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GRAPHQL_ENDPOINT", "https://pos.farmacia.pe/graphql/")
	t.Setenv("SCAN_DEBOUNCE_MS", "500")
	t.Setenv("SUBSIDIARY_ID", "sub-42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://pos.farmacia.pe/graphql/", cfg.GraphQLEndpoint)
	assert.Equal(t, 500, cfg.ScanDebounceMillis)
	assert.Equal(t, "sub-42", cfg.SubsidiaryID)
}
