package sigs

import "github.com/iov-one/timelock/errors"

// ErrInvalidSequence is returned when a signature was created for another
// sequence than the current one of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence")
