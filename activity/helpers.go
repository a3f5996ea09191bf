package activity

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-userstore/pkg/types"
)

// RecordOption mutates the ActivityRecord produced by BuildRecord.
type RecordOption func(*types.ActivityRecord)

// WithData merges extra metadata into the record payload.
func WithData(data map[string]any) RecordOption {
	return func(record *types.ActivityRecord) {
		for k, v := range data {
			record.Data[k] = v
		}
	}
}

// BuildRecord constructs an ActivityRecord for a user mutation. The user
// fields are copied into Data so later changes to user do not leak into the
// record.
func BuildRecord(verb string, user types.User, opts ...RecordOption) types.ActivityRecord {
	record := types.ActivityRecord{
		Verb:       strings.TrimSpace(verb),
		ObjectType: "user",
		ObjectID:   strconv.FormatInt(user.ID, 10),
		Data:       UserData(user),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&record)
		}
	}
	return record
}

// UserData flattens a user into log-friendly fields.
func UserData(user types.User) map[string]any {
	return map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"password": user.Password,
	}
}

func cloneMetadata(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
