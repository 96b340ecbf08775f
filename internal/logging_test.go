package internal_test

import (
	"context"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/internal"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := internal.ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInitLogging(t *testing.T) {
	prevLogger, prevOut, prevFlags := slog.Default(), log.Writer(), log.Flags()
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	internal.InitLogging("warn")

	if log.Writer() != os.Stdout {
		t.Error("standard logger should write to stdout directly")
	}
	if want := log.LstdFlags | log.Lmicroseconds; log.Flags() != want {
		t.Errorf("expected flags %d, got %d", want, log.Flags())
	}
	ctx := context.Background()
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !slog.Default().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn should be enabled at warn level")
	}
}
