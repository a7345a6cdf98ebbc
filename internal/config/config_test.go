package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderBedrock, cfg.Model.Provider)
	assert.Equal(t, "anthropic.claude-3-5-sonnet-20240620-v1:0", cfg.Model.ID)
	assert.Equal(t, "us-east-1", cfg.Model.Region)
	assert.Equal(t, 4096, cfg.Model.MaxTokens)
	assert.Zero(t, cfg.Model.Temperature)
	assert.Empty(t, cfg.Model.StopSequences)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "openai")
	t.Setenv("MODEL_ID", "gpt-4o")
	t.Setenv("MODEL_STOP_SEQUENCES", "END,STOP")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Model.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model.ID)
	assert.Equal(t, []string{"END", "STOP"}, cfg.Model.StopSequences)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "mystery")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestModelConfig_Validate(t *testing.T) {
	valid := ModelConfig{Provider: ProviderGemini, ID: "gemini-1.5-pro", MaxTokens: 10}

	tests := []struct {
		name    string
		mutate  func(*ModelConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*ModelConfig) {}},
		{name: "empty id", mutate: func(m *ModelConfig) { m.ID = "" }, wantErr: "model id"},
		{name: "zero tokens", mutate: func(m *ModelConfig) { m.MaxTokens = 0 }, wantErr: "max tokens"},
		{name: "negative temperature", mutate: func(m *ModelConfig) { m.Temperature = -0.1 }, wantErr: "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
