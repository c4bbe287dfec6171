package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAppID rejects non-positive identifiers before any provider
// is called.
var ErrInvalidAppID = errors.New("invalid app id")

// AllSourcesError is returned when every provider we tried failed.
// Partial failure never produces this; the analysis proceeds with
// defaults instead.
type AllSourcesError struct {
	AppID  int
	Tried  []string
	Errors map[string]error
}

func (e *AllSourcesError) Error() string {
	return fmt.Sprintf("app %d: all sources unavailable (tried %s)",
		e.AppID, strings.Join(e.Tried, ", "))
}

// IsAllSourcesDown reports whether err is an all-sources failure.
func IsAllSourcesDown(err error) bool {
	var target *AllSourcesError
	return errors.As(err, &target)
}
