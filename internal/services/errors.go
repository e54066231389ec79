package services

import (
	"errors"
	"fmt"
)

// ErrNoProfiles is returned when the profile collection is empty or could
// not be loaded at all.
var ErrNoProfiles = errors.New("no profiles found")

// ErrNoAnalysis is returned when a session has no stored analysis to export.
var ErrNoAnalysis = errors.New("no analysis data found")

// ConfigurationError reports a weight override value that cannot be
// interpreted as a number. It fails the whole ranking request; no partial
// result is produced.
type ConfigurationError struct {
	Key   string
	Value any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid weight override %q: %v is not numeric", e.Key, e.Value)
}
