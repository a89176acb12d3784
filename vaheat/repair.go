/*
 * This file is part of the vaheat-mate distribution (https://github.com/vaheat/vaheat-mate).
 * Copyright (c) 2026 the vaheat-mate authors.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, version 3.
 *
 * This program is distributed in the hope that it will be useful, but
 * WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
 * General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 */

package vaheat

import (
	"strings"
	"unicode"
)

// The device firmware pretty-prints replies but omits the comma
// between sibling fields, so the text is not valid JSON. repairJSON
// inserts the missing separators: every leaf line (one that does not
// end in a brace, bracket or colon) gets a trailing comma, then the
// one comma this leaves dangling after the final field is stripped
// again.
//
// This is a textual fixup, not a parser. Lines that already end in a
// separator or a structural character are left alone, and the final
// strip only fires when a comma actually precedes the closing
// characters, so running repairJSON on valid JSON returns it
// unchanged and the function is idempotent.
func repairJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || endsStructural(trimmed) || strings.HasSuffix(trimmed, ",") {
			continue
		}
		lines[i] = strings.TrimRight(line, " \t\r") + ","
	}
	return stripFinalComma(strings.Join(lines, "\n"))
}

func endsStructural(line string) bool {
	switch line[len(line)-1] {
	case '{', '}', '[', ']', ':':
		return true
	}
	return false
}

// stripFinalComma removes the comma left after the last field of the
// reply, which has no following sibling. Scanning back from the end,
// only whitespace and closing braces/brackets may sit between the
// comma and the end of the text; any other character means the text
// carries no dangling separator and nothing is removed.
func stripFinalComma(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		switch {
		case c == ',':
			return s[:i] + s[i+1:]
		case c == '}' || c == ']':
			continue
		case unicode.IsSpace(rune(c)):
			continue
		default:
			return s
		}
	}
	return s
}
