package matchservice

import "errors"

// Service errors. Domain selector errors from matchdomain pass through
// wrapped with the operation name.
var (
	// ErrMatchComplete indicates a scoring or start request on a completed
	// match while the reject policy is active.
	ErrMatchComplete = errors.New("match is complete")

	// ErrUnknownPolicy indicates an unrecognised completion policy name.
	ErrUnknownPolicy = errors.New("unknown completion policy")
)
