package kim

import "errors"

// Dispatch errors. Builder-internal failures (unit mismatches, malformed
// model definitions, unknown species, knowledgebase lookups) propagate
// unchanged from the calculator and kb packages.
var (
	// ErrOptionConflict indicates a caller option the dispatcher computes
	// internally for the resolved backend.
	ErrOptionConflict = errors.New("kim: option is determined internally")

	// ErrUnknownBackend indicates a backend name outside the closed set.
	ErrUnknownBackend = errors.New("kim: unknown backend")

	// ErrUnsupportedCombination indicates a backend that cannot drive the
	// model's classification.
	ErrUnsupportedCombination = errors.New("kim: backend does not support this kind of model")

	// ErrUnsupportedSimulator indicates a simulator model bound to an
	// engine this dispatcher has no builder for.
	ErrUnsupportedSimulator = errors.New("kim: unsupported simulator")
)
