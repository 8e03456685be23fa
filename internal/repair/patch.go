package repair

import "strings"

// SetKeyLines replaces every line of content beginning with "<key> = " with
// "<key> = <value>". Lines that do not carry the prefix are left untouched.
// Returns the patched content and the number of lines replaced.
func SetKeyLines(content, key, value string) (string, int) {
	prefix := key + " = "
	lines := strings.Split(content, "\n")

	count := 0
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = prefix + value
			count++
		}
	}

	return strings.Join(lines, "\n"), count
}

// ReplaceCygpathCalls rewrites every "VIRTUAL_ENV=$(cygpath ...)" occurrence so
// that the call argument becomes venvPath. The replaced argument is everything
// between the cygpath token and the closing parenthesis on the same line; a
// line where the parenthesis never closes is not a match.
func ReplaceCygpathCalls(content, venvPath string) (string, int) {
	const marker = "VIRTUAL_ENV=$(cygpath"

	lines := strings.Split(content, "\n")
	count := 0

	for i, line := range lines {
		var b strings.Builder
		rest := line
		changed := false

		for {
			idx := strings.Index(rest, marker)
			if idx < 0 {
				b.WriteString(rest)
				break
			}

			after := rest[idx+len(marker):]

			end := strings.Index(after, ")")
			if end < 0 {
				// Unterminated on this line, leave the remainder as-is.
				b.WriteString(rest)
				break
			}

			b.WriteString(rest[:idx])
			b.WriteString(marker + " " + venvPath + ")")
			rest = after[end+1:]
			count++
			changed = true
		}

		if changed {
			lines[i] = b.String()
		}
	}

	return strings.Join(lines, "\n"), count
}

// ReplaceExportLines rewrites every line beginning "export VIRTUAL_ENV=" with
// the literal line "EXPORT VIRTUAL_ENV=<venvPath>". The uppercase keyword
// reproduces the replacement text of the original repair script verbatim.
func ReplaceExportLines(content, venvPath string) (string, int) {
	const prefix = "export VIRTUAL_ENV="
	lines := strings.Split(content, "\n")

	count := 0
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = "EXPORT VIRTUAL_ENV=" + venvPath
			count++
		}
	}

	return strings.Join(lines, "\n"), count
}
