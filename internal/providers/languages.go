package providers

import "strings"

// splitLanguages flattens the storefront's comma-separated language
// string, which arrives with embedded markup for audio-support
// annotations, into plain names.
func splitLanguages(raw string) []string {
	// Everything after the first <br> is the audio-support footnote,
	// not a language name.
	if i := strings.Index(raw, "<br>"); i >= 0 {
		raw = raw[:i]
	}
	raw = stripMarkup(raw)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "*"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stripMarkup(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
