package core

import "errors"

// Core error taxonomy. All of these are handled locally: an event that
// fails with one of them is dropped, never relayed, and never fatal.
var (
	// ErrUnknownSession - the event references a session id with no
	// table entry (already destroyed, or guessed).
	ErrUnknownSession = errors.New("unknown session")

	// ErrNotAMember - the sender is not one of the session's two
	// connections. Dropping these keeps session ids unguessable in
	// practice: knowing an id is not enough to inject or eavesdrop.
	ErrNotAMember = errors.New("sender is not a session member")

	// ErrAlreadyQueuedOrPaired - a find-match from a connection that is
	// already waiting or already in a session. Rejected, no state change.
	ErrAlreadyQueuedOrPaired = errors.New("connection already queued or paired")
)
