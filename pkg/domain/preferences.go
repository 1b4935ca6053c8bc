package domain

import (
	"context"
	"errors"
)

// Well-known preference keys.
const (
	PreferenceDarkMode = "darkModeEnabled"
	PreferenceLastPage = "lastPage"
)

// ErrPreferenceNotFound reports a key with no stored value. Stores signal
// absence through the ok flag; transports map that to this error.
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceStore is an opaque string-keyed storage capability. The only
// guarantee is that the value last written for a key is the value read back.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
