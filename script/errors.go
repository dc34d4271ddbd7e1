package script

import "fmt"

// MalformedScriptCommandError reports a ';'-delimited fragment that
// does not match the "_OPCODE(ARGS)" grammar. Parse logs these via the
// caller-supplied warning callback and continues with the remaining
// fragments — a malformed command never aborts the parse.
type MalformedScriptCommandError struct {
	Fragment string
}

func (err *MalformedScriptCommandError) Error() string {
	return fmt.Sprintf("malformed script command: %q", err.Fragment)
}
