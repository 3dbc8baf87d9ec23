package dockerfile

import "errors"

// Sentinel errors. Callers distinguish failure classes with errors.Is;
// wrapped causes carry the concrete detail (see internal/errs).
var (
	// ErrEmpty is returned when recipe text is empty.
	ErrEmpty = errors.New("dockerfile: empty recipe text")

	// ErrParse is returned when the instruction parser rejects the input,
	// when the recipe begins with something other than FROM or ARG, or when
	// it has no FROM at all. Shell text the chain splitter cannot parse is
	// not an error: its RUN layer simply has no commands.
	ErrParse = errors.New("dockerfile: parse error")

	// ErrValidation is returned when a structurally valid parse still
	// violates the recipe language's rules (e.g. a command outside the fixed
	// instruction set).
	ErrValidation = errors.New("dockerfile: validation error")

	// ErrInvariant marks an internal bug: a write operation would leave the
	// tree in a state that violates an index/line invariant. Callers should
	// treat this as fatal.
	ErrInvariant = errors.New("dockerfile: invariant violation")
)
