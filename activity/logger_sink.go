package activity

import (
	"context"
	"sort"

	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-userstore/pkg/types"
)

// LoggerSink writes sanitized activity records to a types.Logger.
type LoggerSink struct {
	Logger types.Logger
	Masker *masker.Masker
}

var _ types.ActivitySink = (*LoggerSink)(nil)

// NewLoggerSink builds a sink using the default masker.
func NewLoggerSink(logger types.Logger) *LoggerSink {
	return &LoggerSink{Logger: logger}
}

// Log implements types.ActivitySink.
func (s *LoggerSink) Log(_ context.Context, record types.ActivityRecord) error {
	if s == nil || s.Logger == nil {
		return types.ErrMissingActivitySink
	}
	record = SanitizeRecord(s.Masker, record)

	fields := []any{
		"verb", record.Verb,
		"object_type", record.ObjectType,
		"object_id", record.ObjectID,
	}
	if !record.OccurredAt.IsZero() {
		fields = append(fields, "occurred_at", record.OccurredAt)
	}
	keys := make([]string, 0, len(record.Data))
	for key := range record.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, "data."+key, record.Data[key])
	}
	s.Logger.Info("activity", fields...)
	return nil
}
