package activity

import (
	"sync"

	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-userstore/pkg/types"
)

var defaultMaskerOnce sync.Once

// DefaultMasker returns the shared masker with the password fields registered.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		registerDefaultMaskFields(masker.Default)
	})
	return masker.Default
}

// SanitizeRecord masks sensitive values in the activity record data payload.
func SanitizeRecord(mask *masker.Masker, record types.ActivityRecord) types.ActivityRecord {
	if len(record.Data) == 0 {
		return record
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		record.Data = map[string]any{}
		return record
	}

	masked, err := mask.Mask(cloneMetadata(record.Data))
	if err != nil {
		record.Data = map[string]any{}
		return record
	}

	switch masked := masked.(type) {
	case map[string]any:
		record.Data = masked
	default:
		record.Data = map[string]any{}
	}
	return record
}

// SanitizeUser returns the user's fields with the password masked.
func SanitizeUser(user types.User) map[string]any {
	return SanitizeRecord(nil, types.ActivityRecord{Data: UserData(user)}).Data
}

func registerDefaultMaskFields(mask *masker.Masker) {
	if mask == nil {
		return
	}
	mask.RegisterMaskField("Password", "filled4")
	mask.RegisterMaskField("password", "filled4")
}
