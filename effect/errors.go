package effect

import "errors"

// Registry errors.
var (
	// ErrUnknownEffect is returned when an expression names no registered effect.
	ErrUnknownEffect = errors.New("effect: unknown effect")

	// ErrInvalidParam is returned for unknown parameter names or malformed values.
	ErrInvalidParam = errors.New("effect: invalid parameter")

	// ErrDuplicateEffect is returned when registering a name twice.
	ErrDuplicateEffect = errors.New("effect: duplicate effect")
)
