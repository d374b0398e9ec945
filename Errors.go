package champ

import "errors"

// Sentinel errors returned by champ's public API. Callers should use
// errors.Is rather than comparing values directly, since some call
// sites wrap these with additional context via fmt.Errorf's %w verb.
var (
	// ErrNoSuchElement is returned when an operation that requires an
	// existing element (e.g. RemoveFirst on an empty sequenced set) has
	// nothing to operate on.
	ErrNoSuchElement = errors.New("champ: no such element")

	// ErrConcurrentModification is returned by an iterator when the
	// collection it was created from was structurally modified after
	// the iterator was obtained.
	ErrConcurrentModification = errors.New("champ: concurrent structural modification")

	// ErrUnsupportedMutation is returned when a mutation is attempted
	// through a read-only (immutable) view.
	ErrUnsupportedMutation = errors.New("champ: unsupported mutation on read-only view")

	// ErrIllegalArgument is returned when a caller-supplied argument
	// violates a precondition (e.g. Decode input too short for the
	// count or length prefix it must hold).
	ErrIllegalArgument = errors.New("champ: illegal argument")

	// ErrIllegalState is returned when internal bookkeeping hits a
	// state it should never reach given well-behaved inputs - e.g. an
	// ElementCodec reporting it consumed zero or too many bytes.
	ErrIllegalState = errors.New("champ: illegal iterator state")
)
