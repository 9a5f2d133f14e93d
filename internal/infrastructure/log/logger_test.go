package log

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo}, // 默认值
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("ENV", "production")

	cfg := NewConfigFromEnv()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want %q", cfg.Level, "info")
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %q, want %q", cfg.Format, "console")
	}

	t.Setenv("ENV", "development")
	cfg = NewConfigFromEnv()
	if cfg.Level != "debug" {
		t.Errorf("development Level = %q, want %q", cfg.Level, "debug")
	}
	if !cfg.AddSource {
		t.Error("development 环境应开启 AddSource")
	}
}

func TestNewModuleLogger(t *testing.T) {
	Init(&Config{Level: "info", Format: "json"})

	logger := NewModuleLogger("assistant", "service")
	if logger == nil {
		t.Fatal("NewModuleLogger 返回了 nil")
	}

	if IsDebugMode() {
		t.Error("info 级别不应标记为调试模式")
	}
}
