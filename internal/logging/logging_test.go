package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelParsing(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Errorf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultLevelSuppressesDebug(t *testing.T) {
	t.Parallel()

	logger := New("")
	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug must be opt-in")
	}
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Fatal("info must be on by default")
	}
}

func TestComponentTagsRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	Component(base, "fetch").Info("source fetched")
	if !strings.Contains(buf.String(), "component=fetch") {
		t.Fatalf("component attribute missing: %q", buf.String())
	}
}

func TestComponentToleratesNilBase(t *testing.T) {
	t.Parallel()

	if Component(nil, "x") == nil {
		t.Fatal("nil base must still yield a logger")
	}
}
