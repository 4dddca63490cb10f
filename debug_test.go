package kala

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// captureLog routes the package logger into a buffer that follows LogLevel.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := logger
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LogLevel()})))
	t.Cleanup(func() {
		SetLogger(orig)
		logLevel.Set(slog.LevelInfo)
	})
	return &buf
}

func TestDebugModeLowersDefaultLevel(t *testing.T) {
	orig := logger
	t.Cleanup(func() { logLevel.Set(slog.LevelInfo) })
	ctx := context.Background()

	e := NewEngine(nil)
	if orig.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("default logger emits debug before debug mode")
	}
	e.SetDebugMode(true)
	if !orig.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug mode left the default logger above debug")
	}
	e.SetDebugMode(false)
	if orig.Enabled(ctx, slog.LevelDebug) {
		t.Error("leaving debug mode kept debug output")
	}
}

func TestDebugModeLogsFrameStats(t *testing.T) {
	buf := captureLog(t)
	e, _, win := testEngine(t)
	testImage(t, e, win, Vec2{10, 10}, Vec2{5, 5})

	e.RenderWindow(win.ID(), identity)
	if strings.Contains(buf.String(), "msg=frame") {
		t.Fatalf("frame stats logged without debug mode: %s", buf)
	}

	e.SetDebugMode(true)
	e.RenderWindow(win.ID(), identity)
	out := buf.String()
	if !strings.Contains(out, "msg=frame") || !strings.Contains(out, "widgets=1") {
		t.Errorf("frame stats missing from %q", out)
	}
}

func TestDebugCheckTreeDepth(t *testing.T) {
	buf := captureLog(t)
	e, _, win := testEngine(t)

	parent := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	var leaf *Widget
	for i := 0; i < debugMaxTreeDepth; i++ {
		leaf = testImage(t, e, win, Vec2{}, Vec2{1, 1})
		if err := parent.AddChild(leaf); err != nil {
			t.Fatal(err)
		}
		parent = leaf
	}
	debugCheckTreeDepth(leaf)
	if !strings.Contains(buf.String(), "tree depth") {
		t.Errorf("no depth warning in %q", buf)
	}
}
