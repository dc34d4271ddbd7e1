package tldb

import (
	"fmt"
	"io"
	"strings"
)

// WriteReadableText renders one scene's commands into the block format
// documented in §6: a UTF-8 text file the external readable-text
// editor round-trips against. Each block carries the content hash,
// machine-generated context as "--" lines, the comment as a "//" line,
// and the current translation body. Reading this format back into a
// Diff is the external collaborator's job (§1); this package only
// writes it.
func WriteReadableText(w io.Writer, db *DB, scene string) error {
	for _, cmd := range db.LinesForScene(scene) {
		line := db.TLLineForCmd(cmd)

		if _, err := fmt.Fprintf(w, "[%s] {\n", line.ContentHash); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "-- offset=%d page=%d\n", cmd.Offset, cmd.PageNumber); err != nil {
			return err
		}
		if line.Comment != "" {
			for _, commentLine := range strings.Split(line.Comment, "\n") {
				if _, err := fmt.Fprintf(w, "// %s\n", commentLine); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w, line.EnText); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
