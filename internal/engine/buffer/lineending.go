package buffer

import "strings"

// LineEnding specifies the line ending style applied uniformly to the
// whole buffer on serialization.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // DOS/Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// FileFormat returns the option-facing name: unix, dos, or mac.
func (le LineEnding) FileFormat() string {
	switch le {
	case LineEndingCRLF:
		return "dos"
	case LineEndingCR:
		return "mac"
	default:
		return "unix"
	}
}

// LineEndingFromFileFormat maps an option value to a LineEnding.
// Unknown names report ok=false.
func LineEndingFromFileFormat(name string) (LineEnding, bool) {
	switch name {
	case "unix":
		return LineEndingLF, true
	case "dos":
		return LineEndingCRLF, true
	case "mac":
		return LineEndingCR, true
	default:
		return LineEndingLF, false
	}
}

// DetectLineEnding returns the most common line ending in the text,
// defaulting to LF when none are found.
func DetectLineEnding(text string) LineEnding {
	var lf, crlf, cr int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lf++
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		}
	}
	// lf counts only bare \n; the \n of a \r\n pair is consumed above.
	if crlf >= lf && crlf >= cr && crlf > 0 {
		return LineEndingCRLF
	}
	if cr > lf && cr > 0 {
		return LineEndingCR
	}
	return LineEndingLF
}

// splitLines normalizes any mix of endings and splits text into lines.
// The returned slice always has at least one element.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
