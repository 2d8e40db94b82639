package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		env        map[string]string
		assertCfg  func(t *testing.T, cfg *Config)
		wantErr    bool
	}{
		{
			name:       "defaults only",
			configYAML: "",
			assertCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
				assert.Equal(t, "ja-JP", cfg.Speech.LanguageCode)
				assert.Equal(t, 5, cfg.Lessons.WordsPerLesson)
				assert.Equal(t, 24, cfg.Lessons.RecentWindowHours)
				assert.Equal(t, 5000, cfg.Lessons.FrequencyRankLimit)
			},
		},
		{
			name: "config file overrides defaults",
			configYAML: `
server:
  port: 9000
lessons:
  words_per_lesson: 10
  recent_window_hours: 48
`,
			assertCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Lessons.WordsPerLesson)
				assert.Equal(t, 48, cfg.Lessons.RecentWindowHours)
			},
		},
		{
			name: "secrets come from environment",
			env: map[string]string{
				"OPENAI_API_KEY":     "sk-test",
				"DB_PASSWORD":        "hunter2",
				"GOOGLE_TTS_API_KEY": "tts-key",
			},
			assertCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
				assert.Equal(t, "hunter2", cfg.Database.Password)
				assert.Equal(t, "tts-key", cfg.Speech.APIKey)
			},
		},
		{
			name: "invalid recent window",
			configYAML: `
lessons:
  recent_window_hours: 0
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			configFile := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configYAML), 0o644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.assertCfg(t, cfg)
		})
	}
}
