package tldb

import "fmt"

// HashMismatchError reports a TLLine whose stored content_hash does
// not match SHA1(jp_text). Raised while loading a database file; the
// load is aborted since the content-addressing invariant no longer
// holds for the rest of the document.
type HashMismatchError struct {
	Hash string
	Got  string
}

func (err *HashMismatchError) Error() string {
	return fmt.Sprintf("translation database corrupt: stored hash %q does not match computed hash %q", err.Hash, err.Got)
}
