package mzx

import "errors"

// ErrBadMagic is returned when the 4-byte header does not read "MZX0".
var ErrBadMagic = errors.New("mzx: bad magic")

// ErrTruncatedInput is returned when the input ends before the
// decompressed_size byte count from the header has been produced.
var ErrTruncatedInput = errors.New("mzx: truncated input")
