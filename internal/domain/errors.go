package domain

import "errors"

// Failure taxonomy. Everything except ErrUnknownFamily/ErrInvalidSize is
// recoverable by advancing to the next seed; the curation driver never lets
// those abort a batch run.
var (
	// ErrConstructionFailed means structural synthesis could not place all
	// values for this seed.
	ErrConstructionFailed = errors.New("construction failed")

	// ErrBudgetExceeded means a bounded search ran out of its node budget.
	// Callers treat it as a negative verdict, never as a positive one.
	ErrBudgetExceeded = errors.New("solver budget exceeded")

	// ErrUnknownFamily flags a family name with no constraint set. A call
	// site bug, not a retryable condition.
	ErrUnknownFamily = errors.New("unknown puzzle family")

	// ErrInvalidSize flags a family/size combination with no defined
	// constraint set (including orthogonal order 6).
	ErrInvalidSize = errors.New("invalid size for family")

	// ErrUnsupportedBackend means the selected solver backend cannot handle
	// the family (the SAT backend has no multi-channel encoding).
	ErrUnsupportedBackend = errors.New("family not supported by solver backend")
)
