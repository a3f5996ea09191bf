// Package glogger adapts go-logger (glog) loggers to types.Logger.
package glogger

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-userstore/pkg/types"
)

// Target is the subset of glog.Logger the adapter forwards to.
type Target interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Adapter adapts a glog logger to types.Logger. Fields are prepended to every
// line.
type Adapter struct {
	l      Target
	fields []any
}

var _ types.Logger = (*Adapter)(nil)

// New wraps target. A nil target yields an adapter that drops every line.
func New(target Target, fields ...any) *Adapter {
	return &Adapter{l: target, fields: append([]any(nil), fields...)}
}

// NewPretty builds the pretty console logger used by the CLI in verbose mode
// and returns the named child logger wrapped in an Adapter.
func NewPretty(name string, fields ...any) *Adapter {
	base := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("userstore"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)
	return New(base.GetLogger(name), fields...)
}

func (a *Adapter) Debug(msg string, args ...any) {
	if a.l == nil {
		return
	}
	a.l.Debug(msg, a.args(args)...)
}

func (a *Adapter) Info(msg string, args ...any) {
	if a.l == nil {
		return
	}
	a.l.Info(msg, a.args(args)...)
}

func (a *Adapter) Error(msg string, err error, args ...any) {
	if a.l == nil {
		return
	}
	if err != nil {
		args = append([]any{"error", err}, args...)
	}
	a.l.Error(msg, a.args(args)...)
}

func (a *Adapter) args(args []any) []any {
	if len(a.fields) == 0 {
		return args
	}
	out := make([]any, 0, len(a.fields)+len(args))
	out = append(out, a.fields...)
	return append(out, args...)
}
