package container

import "errors"

// ErrBadMagic is returned when the first 6 bytes of a container do not
// match the "mrgd00" magic.
var ErrBadMagic = errors.New("container: bad magic")

// ErrTruncatedEntry is returned when an entry's header claims more
// bytes than remain in the input.
var ErrTruncatedEntry = errors.New("container: truncated entry")

// ErrTruncatedStringTable is returned when a script_text offset table
// is missing its 0xFFFFFFFF terminator or references bytes past the
// end of the string payload.
var ErrTruncatedStringTable = errors.New("container: truncated string table")
