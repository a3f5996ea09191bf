package glogger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type line struct {
	level string
	msg   string
	args  []any
}

type recordingTarget struct {
	lines []line
}

func (r *recordingTarget) Debug(msg string, args ...any) {
	r.lines = append(r.lines, line{"debug", msg, args})
}

func (r *recordingTarget) Info(msg string, args ...any) {
	r.lines = append(r.lines, line{"info", msg, args})
}

func (r *recordingTarget) Error(msg string, args ...any) {
	r.lines = append(r.lines, line{"error", msg, args})
}

func TestAdapter_PrependsFields(t *testing.T) {
	target := &recordingTarget{}
	logger := New(target, "invocation_id", "abc")

	logger.Debug("debug line", "k", 1)
	logger.Info("info line")

	require.Equal(t, []line{
		{"debug", "debug line", []any{"invocation_id", "abc", "k", 1}},
		{"info", "info line", []any{"invocation_id", "abc"}},
	}, target.lines)
}

func TestAdapter_ErrorAddsErrorField(t *testing.T) {
	target := &recordingTarget{}
	boom := errors.New("boom")

	New(target).Error("failed", boom, "username", "bob")
	New(target).Error("no error", nil)

	require.Equal(t, []any{"error", boom, "username", "bob"}, target.lines[0].args)
	require.Empty(t, target.lines[1].args)
}

func TestAdapter_NilTarget(t *testing.T) {
	logger := New(nil)
	require.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x")
		logger.Error("x", errors.New("boom"))
	})
}

func TestNewPretty(t *testing.T) {
	logger := NewPretty("test", "invocation_id", "abc")
	require.NotNil(t, logger)
	require.NotPanics(t, func() {
		logger.Debug("pretty logger ready")
	})
}
