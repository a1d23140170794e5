package engine

import "errors"

var (
	// ErrInsufficientTeams is returned when a fixture generator is given
	// fewer than two teams. No partial fixture list is produced.
	ErrInsufficientTeams = errors.New("not enough teams to generate fixtures (minimum 2 required)")

	// ErrInvalidFormat is returned for a format value outside the known
	// enum. The silent round-robin default of older versions is gone; a
	// fallback only happens for known formats without a dedicated
	// generator, and it is reported to the caller.
	ErrInvalidFormat = errors.New("invalid competition format")

	// ErrDataConsistency is returned when the supplied data contradicts
	// itself: a duplicated team, a finished game referencing an unknown
	// team, or a finished game missing its final score. Such input is
	// never skipped: it indicates corrupted state the caller must
	// investigate.
	ErrDataConsistency = errors.New("inconsistent game data")
)
