package domain

import "errors"

var (
	// ErrInsufficientQuorum is the only aggregate-level failure: fewer
	// usable items than the mode's quorum. It changes control flow
	// (full fallback or empty search result); per-item failures never do.
	ErrInsufficientQuorum = errors.New("insufficient quorum")
)
