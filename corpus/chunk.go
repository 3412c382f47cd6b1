package corpus

import "strings"

// DefaultSectionMarkers are the section headings recognized by Sections when
// the caller does not supply its own set.
var DefaultSectionMarkers = []string{"## HPI", "## Assessment and Plan", "## Pathology"}

// Sections splits text into section-aware chunks: a new chunk starts at every
// line whose trimmed form begins with one of the markers (the marker line
// belongs to its chunk). Text before the first marker forms a leading chunk.
// Empty chunks are dropped; text without any marker comes back whole.
func Sections(text string, markers []string) []string {
	if markers == nil {
		markers = DefaultSectionMarkers
	}

	var parts []string
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		part := strings.TrimSpace(strings.Join(buf, "\n"))
		if part != "" {
			parts = append(parts, part)
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if startsSection(line, markers) {
			flush()
		}
		buf = append(buf, line)
	}
	flush()

	return parts
}

// PickQuote selects the evidentiary quote for a document: the first section
// chunk, or the first fallbackLen runes of the raw text when the document
// yields no chunks at all.
func PickQuote(text string, markers []string, fallbackLen int) string {
	if chunks := Sections(text, markers); len(chunks) > 0 {
		return chunks[0]
	}

	runes := []rune(text)
	if fallbackLen < 0 {
		fallbackLen = 0
	}
	if len(runes) > fallbackLen {
		runes = runes[:fallbackLen]
	}
	return string(runes)
}

func startsSection(line string, markers []string) bool {
	trimmed := strings.TrimSpace(line)
	for _, m := range markers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}
