package urbanapi

import (
	"context"
	"encoding/json"
	"fmt"

	"urban-assistant-be/pkg/ai/tools"
)

// FetchFunc retrieves the data behind one action for a territory
type FetchFunc func(ctx context.Context, t Territory) (json.RawMessage, error)

// SummaryTables binds every data-fetch action to its summary table
var SummaryTables = map[tools.ActionName]string{
	tools.GeneralStatsCity:        "city",
	tools.GeneralStatsDistrictsMO: "district",
	tools.GeneralStatsBlock:       "block",
	tools.GeneralStatsEducation:   "education",
	tools.GeneralStatsHealthcare:  "healthcare",
	tools.GeneralStatsCulture:     "culture",
	tools.GeneralStatsSports:      "sport",
	tools.GeneralStatsServices:    "government_services",
	tools.GeneralStatsDemography:  "demography",
	tools.GeneralStatsHousing:     "housing_services",
	tools.GeneralStatsTransport:   "transport",
	tools.GeneralStatsObject:      "object",
	tools.GeneralStatsComplaints:  "complaints",
}

// SummaryTableFuncs builds fetch functions for every summary table
func SummaryTableFuncs(c *Client) map[tools.ActionName]FetchFunc {
	funcs := make(map[tools.ActionName]FetchFunc, len(SummaryTables))
	for name, table := range SummaryTables {
		funcs[name] = func(ctx context.Context, t Territory) (json.RawMessage, error) {
			return c.SummaryTable(ctx, table, t)
		}
	}
	return funcs
}

// Registry is the read-only action to fetch function table
type Registry struct {
	funcs map[tools.ActionName]FetchFunc
}

// NewRegistry fails when any action of the given tool sets has no fetch function
func NewRegistry(funcs map[tools.ActionName]FetchFunc, sets ...tools.ToolSet) (*Registry, error) {
	copied := make(map[tools.ActionName]FetchFunc, len(funcs))
	for name, fn := range funcs {
		if fn == nil {
			return nil, fmt.Errorf("registry: nil fetch function for %s", name)
		}
		copied[name] = fn
	}
	for _, set := range sets {
		for _, name := range set.Names() {
			if _, ok := copied[name]; !ok {
				return nil, fmt.Errorf("registry: tool set %q action %s has no fetch function", set.Name(), name)
			}
		}
	}
	return &Registry{funcs: copied}, nil
}

// Lookup returns the fetch function bound to name
func (r *Registry) Lookup(name tools.ActionName) (FetchFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}
