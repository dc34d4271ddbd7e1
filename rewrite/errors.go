package rewrite

import "fmt"

// UnbreakableGlueError reports that step 10's glue lookahead could not
// satisfy a glue constraint: the next command's leading word would
// overflow the line, and either that word is wider than a whole line
// or the current broken text has no internal space left to convert
// into a break. Rewrite returns it as soon as it occurs, so no scene's
// output is produced, not only the failing scene's; the editor must
// insert %{n} or %{s} to give the line-breaker room.
type UnbreakableGlueError struct {
	Scene  string
	Offset uint32
}

func (err *UnbreakableGlueError) Error() string {
	return fmt.Sprintf("unbreakable glue in scene %q at offset %d: next line has no space to break on", err.Scene, err.Offset)
}
