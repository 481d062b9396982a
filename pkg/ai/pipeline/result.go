package pipeline

import "urban-assistant-be/pkg/ai/tools"

// Result is the outcome of one sub-pipeline run
type Result struct {
	Answer      string
	Pipeline    tools.ActionName
	Actions     []tools.ActionName // data-fetch actions used, accessibility only
	ContextList []string           // retrieved passages, strategy only
}
