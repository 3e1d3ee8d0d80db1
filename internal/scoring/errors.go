package scoring

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ConfigError reports a malformed keyword table entry at construction time.
type ConfigError struct {
	Phrase string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Phrase == "" {
		return fmt.Sprintf("invalid keyword entry: %s", e.Reason)
	}
	return fmt.Sprintf("invalid keyword entry %q: %s", e.Phrase, e.Reason)
}
