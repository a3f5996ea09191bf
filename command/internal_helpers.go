package command

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-userstore/activity"
	"github.com/goliatone/go-userstore/pkg/types"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeActivitySink(sink types.ActivitySink) types.ActivitySink {
	if sink != nil {
		return sink
	}
	return types.NopActivitySink{}
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func missingSessionProvider() error {
	return goerrors.Wrap(types.ErrMissingSessionProvider, goerrors.CategoryInternal, "userstore: command not wired").
		WithCode(goerrors.CodeInternal)
}

func logActivity(ctx context.Context, sink types.ActivitySink, logger types.Logger, record types.ActivityRecord) {
	if err := sink.Log(ctx, record); err != nil {
		logger.Error("activity log failed", err, "verb", record.Verb)
	}
}

func recordFor(clock types.Clock, verb string, user types.User, opts ...activity.RecordOption) types.ActivityRecord {
	record := activity.BuildRecord(verb, user, opts...)
	record.OccurredAt = now(clock)
	return record
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
