package matcher

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// CorrectAnswerMarker prefixes the corrected action list in verifier responses
const CorrectAnswerMarker = "[Correct answer]: "

// tokenCutset is trimmed from both ends of every token before matching
const tokenCutset = ".,;:!?'\"`()[]{}<>*"

// Nearest returns the vocabulary entry with the smallest Levenshtein distance to candidate.
// Ties resolve to the entry that appears first in vocabulary.
// vocabulary must not be empty.
func Nearest(candidate string, vocabulary []string) string {
	if len(vocabulary) == 0 {
		panic("matcher: empty vocabulary")
	}

	best := vocabulary[0]
	bestDist := levenshtein.ComputeDistance(candidate, best)
	for _, word := range vocabulary[1:] {
		if d := levenshtein.ComputeDistance(candidate, word); d < bestDist {
			best, bestDist = word, d
		}
	}
	return best
}

// ParseActions extracts vocabulary entries from a model response.
// Entries named verbatim anywhere in the response come first, in order of
// appearance. When there are such entries, other tokens count only if they
// are near misses of an entry; otherwise every token is snapped to its
// nearest entry. Blank responses yield no actions.
func ParseActions(raw string, vocabulary []string) []string {
	text := strings.ReplaceAll(raw, CorrectAnswerMarker, " ")

	out := exactMentions(text, vocabulary)
	seen := make(map[string]struct{}, len(out))
	for _, name := range out {
		seen[name] = struct{}{}
	}
	nearOnly := len(out) > 0

	for _, field := range strings.Fields(text) {
		token := strings.Trim(field, tokenCutset)
		if token == "" {
			continue
		}
		match := Nearest(token, vocabulary)
		if _, dup := seen[match]; dup {
			continue
		}
		if nearOnly && !isNearMiss(token, match) {
			continue
		}
		seen[match] = struct{}{}
		out = append(out, match)
	}
	return out
}

type mention struct {
	name string
	at   int
}

// exactMentions returns the entries contained in text ordered by first
// occurrence. An entry found only inside a longer mentioned entry is skipped.
func exactMentions(text string, vocabulary []string) []string {
	var found []mention
	for _, name := range vocabulary {
		if name == "" {
			continue
		}
		if at := strings.Index(text, name); at >= 0 {
			found = append(found, mention{name: name, at: at})
		}
	}

	var out []string
	for _, m := range found {
		if coveredBy(m, found) {
			continue
		}
		out = append(out, m.name)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Index(text, out[i]) < strings.Index(text, out[j])
	})
	return out
}

func coveredBy(m mention, all []mention) bool {
	for _, other := range all {
		if len(other.name) > len(m.name) && strings.Contains(other.name, m.name) &&
			other.at <= m.at && m.at+len(m.name) <= other.at+len(other.name) {
			return true
		}
	}
	return false
}

// isNearMiss reports whether token reads as a misspelling of name
func isNearMiss(token, name string) bool {
	return levenshtein.ComputeDistance(token, name) <= len(name)/4
}
