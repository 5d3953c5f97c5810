// Package approval holds the routing engine's domain errors. The engine
// itself lives in internal/service/approval.
package approval

import "errors"

var (
	// ErrUnauthorized means the caller's role level or department does not
	// match the request's current stage.
	ErrUnauthorized = errors.New("not an approver for this stage")

	// ErrInvalidStateTransition means the request is already terminal.
	ErrInvalidStateTransition = errors.New("request is not pending")

	// ErrConflict means another approver decided the same stage first.
	ErrConflict = errors.New("request was decided concurrently")

	ErrDependencyUnavailable = errors.New("approval dependency unavailable")
)
