// Package engine implements the rules-agnostic game state machine: seats,
// betting rounds, pot accounting and showdown resolution. Everything
// variant-specific is reached through the Variant interface, so the driver
// contains no per-game conditionals.
package engine

import "errors"

// Sentinel error kinds. Callers classify failures with errors.Is; every
// error returned by the engine wraps exactly one of these.
var (
	// ErrInvalidArgument covers nonsense input: bad seat indexes, empty
	// names, negative chip counts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState covers operations that are legal in some other
	// state: acting while no hand is running, acting out of turn.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidAction covers actions that fail validation for the
	// current position, like checking when a bet is live. The host
	// surfaces these to the player; the engine state is unchanged.
	ErrInvalidAction = errors.New("invalid action")

	// ErrParse covers persistence format violations. Loading yields no
	// state.
	ErrParse = errors.New("parse error")
)
