package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	backstory := writeFile(t, dir, "backstory.txt", "Cassian is calm and precise.")

	tests := []struct {
		name      string
		document  string
		wantErr   bool
		errField  string
		wantCheck func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal valid document",
			document: `{
				"persona": {"id": "share-code-1"},
				"memory": {"files": ["` + backstory + `"]}
			}`,
			wantCheck: func(t *testing.T, cfg *Config) {
				if cfg.Persona.ID != "share-code-1" {
					t.Errorf("Persona.ID = %q, want %q", cfg.Persona.ID, "share-code-1")
				}
				if cfg.Persona.Name != "Cassian" {
					t.Errorf("Persona.Name = %q, want default %q", cfg.Persona.Name, "Cassian")
				}
				if cfg.Persona.Endpoint != EndpointDiscordBot {
					t.Errorf("Persona.Endpoint = %q, want default %q", cfg.Persona.Endpoint, EndpointDiscordBot)
				}
				if cfg.Memory.Separator != "\n" {
					t.Errorf("Memory.Separator = %q, want default newline", cfg.Memory.Separator)
				}
				if cfg.Reply.TimeoutSeconds != 90 {
					t.Errorf("Reply.TimeoutSeconds = %d, want default 90", cfg.Reply.TimeoutSeconds)
				}
				if cfg.Greeter.Enabled {
					t.Error("Greeter.Enabled = true, want default false")
				}
				if cfg.Log.Format != "json" {
					t.Errorf("Log.Format = %q, want default json", cfg.Log.Format)
				}
			},
		},
		{
			name: "full document overrides defaults",
			document: `{
				"persona": {"id": "share-code-1", "name": "Cass", "enable_filter": false},
				"memory": {"files": ["` + backstory + `"], "separator": "\n\n"},
				"reply": {"timeout_seconds": 30, "error_notice": "oops"},
				"greeter": {"enabled": true, "interval_minutes": 5, "channel_ids": ["123"]},
				"database": {"path": "test.db"},
				"log": {"level": "debug", "format": "text"}
			}`,
			wantCheck: func(t *testing.T, cfg *Config) {
				if cfg.Persona.Name != "Cass" {
					t.Errorf("Persona.Name = %q, want %q", cfg.Persona.Name, "Cass")
				}
				if cfg.Persona.EnableFilter {
					t.Error("Persona.EnableFilter = true, want false")
				}
				if cfg.Memory.Separator != "\n\n" {
					t.Errorf("Memory.Separator = %q, want blank line", cfg.Memory.Separator)
				}
				if cfg.Reply.TimeoutSeconds != 30 {
					t.Errorf("Reply.TimeoutSeconds = %d, want 30", cfg.Reply.TimeoutSeconds)
				}
				if !cfg.Greeter.Enabled || cfg.Greeter.IntervalMinutes != 5 {
					t.Errorf("Greeter = %+v, want enabled at 5 minutes", cfg.Greeter)
				}
				if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
					t.Errorf("Log = %+v, want debug/text", cfg.Log)
				}
			},
		},
		{
			name: "missing persona id",
			document: `{
				"memory": {"files": ["` + backstory + `"]}
			}`,
			wantErr:  true,
			errField: "config",
		},
		{
			name: "no memory files",
			document: `{
				"persona": {"id": "share-code-1"},
				"memory": {"files": []}
			}`,
			wantErr:  true,
			errField: "config",
		},
		{
			name: "missing overlay file",
			document: `{
				"persona": {"id": "share-code-1"},
				"memory": {"files": ["` + filepath.Join(dir, "missing.txt") + `"]}
			}`,
			wantErr:  true,
			errField: "memory.files",
		},
		{
			name: "invalid log level",
			document: `{
				"persona": {"id": "share-code-1"},
				"memory": {"files": ["` + backstory + `"]},
				"log": {"level": "verbose"}
			}`,
			wantErr:  true,
			errField: "config",
		},
		{
			name:     "malformed document",
			document: `{"persona": {`,
			wantErr:  true,
			errField: "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.json", tt.document)

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("Load() error type = %T, want *ConfigError", err)
				}
				if cfgErr.Field != tt.errField {
					t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.errField)
				}
				return
			}

			if tt.wantCheck != nil {
				tt.wantCheck(t, cfg)
			}
		})
	}
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Load() expected error for missing document")
	}
}

func TestLoadSecrets(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		wantURL string
	}{
		{
			name: "all secrets present",
			envVars: map[string]string{
				"DISCORD_TOKEN":    "test-token",
				"KINDROID_API_KEY": "test-key",
			},
			wantURL: "https://api.kindroid.ai/v1",
		},
		{
			name: "custom infer URL",
			envVars: map[string]string{
				"DISCORD_TOKEN":      "test-token",
				"KINDROID_API_KEY":   "test-key",
				"KINDROID_INFER_URL": "http://localhost:9999/v1",
			},
			wantURL: "http://localhost:9999/v1",
		},
		{
			name: "missing discord token",
			envVars: map[string]string{
				"KINDROID_API_KEY": "test-key",
			},
			wantErr: true,
		},
		{
			name: "missing kindroid key",
			envVars: map[string]string{
				"DISCORD_TOKEN": "test-token",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("DISCORD_TOKEN")
			os.Unsetenv("KINDROID_API_KEY")
			os.Unsetenv("KINDROID_INFER_URL")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			secrets, err := LoadSecrets(filepath.Join(t.TempDir(), ".env"))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadSecrets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if secrets.KindroidURL != tt.wantURL {
				t.Errorf("KindroidURL = %q, want %q", secrets.KindroidURL, tt.wantURL)
			}
			if secrets.DiscordToken != tt.envVars["DISCORD_TOKEN"] {
				t.Errorf("DiscordToken = %q, want %q", secrets.DiscordToken, tt.envVars["DISCORD_TOKEN"])
			}
		})
	}
}

func TestLoadSecretsFromEnvFile(t *testing.T) {
	os.Unsetenv("DISCORD_TOKEN")
	os.Unsetenv("KINDROID_API_KEY")
	os.Unsetenv("KINDROID_INFER_URL")

	envFile := writeFile(t, t.TempDir(), ".env",
		"DISCORD_TOKEN=file-token\nKINDROID_API_KEY=file-key\n")

	secrets, err := LoadSecrets(envFile)
	if err != nil {
		t.Fatalf("LoadSecrets() error = %v", err)
	}

	if secrets.DiscordToken != "file-token" {
		t.Errorf("DiscordToken = %q, want %q", secrets.DiscordToken, "file-token")
	}
	if secrets.KindroidAPIKey != "file-key" {
		t.Errorf("KindroidAPIKey = %q, want %q", secrets.KindroidAPIKey, "file-key")
	}

	// godotenv exports into the process environment
	os.Unsetenv("DISCORD_TOKEN")
	os.Unsetenv("KINDROID_API_KEY")
}
