package script

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"seehuhn.de/go/deepluna/text"
)

// argsCharClass mirrors the grammar in SPEC_FULL.md §4.3: word chars,
// whitespace and a handful of punctuation characters opcodes are built
// from. Go's \w and \s are ASCII-only, so a full-width space does not
// match.
const argsCharClass = `\w\s\-,` + "`" + `@$:.+^_`

var (
	commandRE  = regexp.MustCompile(`^_([A-Za-z_0-9]+)\(([` + argsCharClass + `]*)\)$`)
	offsetRE   = regexp.MustCompile(`\$(\d+)`)
	modifierRE = regexp.MustCompile(`@(\w)`)
)

// Hash returns the content-address (hex SHA-1 of the UTF-8 bytes) used
// to key a StringTable entry into the translation database.
func Hash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Parse tokenizes one decompressed script's bytecode into an ordered
// sequence of TextCommands. jpStrings is the full StringTable (indexed
// by offset) used to compute each command's JPHash and HasRuby.
// Fragments that don't match the opcode grammar are reported through
// onWarning (which may be nil) and skipped; Parse never fails outright
// for malformed input, per the parser's log-and-skip error policy.
func Parse(scriptText string, jpStrings []string, onWarning func(error)) []TextCommand {
	warn := onWarning
	if warn == nil {
		warn = func(error) {}
	}

	var commands []TextCommand
	seen := make(map[uint32]bool)
	currentPage := int32(0)

	for _, fragment := range strings.Split(scriptText, ";") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		m := commandRE.FindStringSubmatch(fragment)
		if m == nil {
			warn(&MalformedScriptCommandError{Fragment: fragment})
			continue
		}
		opcode, args := m[1], m[2]

		if opcode == "PGST" {
			arg0 := firstArg(args)
			if page, err := strconv.Atoi(arg0); err == nil {
				currentPage = int32(page)
			}
			continue
		}

		isZM := strings.HasPrefix(opcode, "ZM")
		isMSAD := opcode == "MSAD"
		isSELR := opcode == "SELR"
		if !isZM && !isMSAD && !isSELR {
			continue
		}
		if args == "" {
			continue
		}

		for _, arg := range strings.Split(args, ",") {
			modifiers := flatten(modifierRE.FindAllStringSubmatch(arg, -1))
			hasX := contains(modifiers, "x")

			offsetMatches := offsetRE.FindAllStringSubmatchIndex(arg, -1)
			for i, loc := range offsetMatches {
				// loc: [fullStart, fullEnd, g1Start, g1End]
				offsetStr := arg[loc[2]:loc[3]]
				offset64, err := strconv.ParseUint(offsetStr, 10, 32)
				if err != nil {
					continue
				}
				offset := uint32(offset64)

				if seen[offset] {
					continue
				}

				scanEnd := len(arg)
				if i+1 < len(offsetMatches) {
					scanEnd = offsetMatches[i+1][0]
				}
				forcedNewline := strings.ContainsRune(arg[loc[0]:scanEnd], '^')

				isGlued := (isMSAD || hasX) && !previousHasForcedNewline(commands)

				jp := ""
				if int(offset) < len(jpStrings) {
					jp = jpStrings[offset]
				}

				cmd := TextCommand{
					Offset:           offset,
					JPHash:           Hash(jp),
					PageNumber:       currentPage,
					HasRuby:          text.HasRuby(jp),
					IsGlued:          isGlued,
					IsChoice:         isSELR,
					Modifiers:        prefixAll(modifiers, "@"),
					HasForcedNewline: forcedNewline,
				}
				commands = append(commands, cmd)
				seen[offset] = true
			}
		}
	}

	return commands
}

func previousHasForcedNewline(commands []TextCommand) bool {
	if len(commands) == 0 {
		return false
	}
	return commands[len(commands)-1].HasForcedNewline
}

func firstArg(args string) string {
	if args == "" {
		return ""
	}
	parts := strings.SplitN(args, ",", 2)
	return strings.TrimSpace(parts[0])
}

func flatten(matches [][]string) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

func prefixAll(ss []string, prefix string) []string {
	if len(ss) == 0 {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = prefix + s
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
