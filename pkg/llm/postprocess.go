package llm

import "strings"

var answerMarkers = []string{"ANSWER: ", "ОТВЕТ: "}

// ExtractAnswer drops the reasoning a model writes before its answer marker.
// Text without a marker is returned trimmed.
func ExtractAnswer(raw string) string {
	cut := -1
	for _, m := range answerMarkers {
		if i := strings.LastIndex(raw, m); i >= 0 && i+len(m) > cut {
			cut = i + len(m)
		}
	}
	if cut < 0 {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(raw[cut:])
}

// PrepContext makes retrieved context safe to embed in template envelopes
func PrepContext(context string) string {
	return strings.ReplaceAll(context, `"`, `'`)
}
