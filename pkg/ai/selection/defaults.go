package selection

import (
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/urbanapi"
)

// Defaults returns the territory-level actions implied by the question scope.
// Every matching rule contributes.
func Defaults(t urbanapi.Territory) []tools.ActionName {
	var out []tools.ActionName
	switch t.Type {
	case urbanapi.TerritoryCity:
		out = append(out, tools.GeneralStatsCity)
	case urbanapi.TerritoryMunicipality, urbanapi.TerritoryDistrict:
		out = append(out, tools.GeneralStatsDistrictsMO)
	}
	if t.Type == urbanapi.TerritoryNone && t.HasName() && !t.HasCoordinates() {
		out = append(out, tools.GeneralStatsBlock)
	}
	return out
}

// EnsureNonEmpty appends fallback when nothing was resolved
func EnsureNonEmpty(actions []tools.ActionName, fallback tools.ActionName) []tools.ActionName {
	if len(actions) == 0 {
		return []tools.ActionName{fallback}
	}
	return actions
}

// Merge concatenates lists, keeping the first occurrence of each action
func Merge(lists ...[]tools.ActionName) []tools.ActionName {
	var out []tools.ActionName
	seen := make(map[tools.ActionName]struct{})
	for _, list := range lists {
		for _, a := range list {
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
