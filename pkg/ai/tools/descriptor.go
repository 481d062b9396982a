package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActionName identifies an invocable capability (a sub-pipeline or a data-fetch function).
// Only the constants declared in names.go are valid values.
type ActionName string

func (a ActionName) String() string {
	return string(a)
}

// Parameter describes a single named argument of a tool
type Parameter struct {
	Name     string
	Type     string
	Required bool
}

// Tool describes one capability the selector model may choose
type Tool struct {
	Name        ActionName
	Description string
	Parameters  []Parameter
}

// ToolSet is an immutable, ordered collection of tools.
// Order matters: it is the tie-break order of the fuzzy matcher.
type ToolSet struct {
	name     string
	tools    []Tool
	index    map[ActionName]int
	rendered string
}

// NewToolSet builds a tool set, rejecting empty sets and duplicate names
func NewToolSet(name string, tools ...Tool) (ToolSet, error) {
	if len(tools) == 0 {
		return ToolSet{}, fmt.Errorf("tool set %q is empty", name)
	}

	index := make(map[ActionName]int, len(tools))
	copied := make([]Tool, len(tools))
	for i, t := range tools {
		if t.Name == "" {
			return ToolSet{}, fmt.Errorf("tool set %q: tool #%d has no name", name, i)
		}
		if _, dup := index[t.Name]; dup {
			return ToolSet{}, fmt.Errorf("tool set %q: duplicate tool %q", name, t.Name)
		}
		index[t.Name] = i
		params := make([]Parameter, len(t.Parameters))
		copy(params, t.Parameters)
		copied[i] = Tool{Name: t.Name, Description: t.Description, Parameters: params}
	}

	set := ToolSet{name: name, tools: copied, index: index}
	rendered, err := set.render()
	if err != nil {
		return ToolSet{}, fmt.Errorf("tool set %q: %w", name, err)
	}
	set.rendered = rendered
	return set, nil
}

// MustToolSet is NewToolSet for package-level tables; it panics on invalid input
func MustToolSet(name string, tools ...Tool) ToolSet {
	set, err := NewToolSet(name, tools...)
	if err != nil {
		panic(err)
	}
	return set
}

func (s ToolSet) Name() string {
	return s.name
}

func (s ToolSet) Len() int {
	return len(s.tools)
}

// Tools returns a copy of the descriptors in declaration order
func (s ToolSet) Tools() []Tool {
	out := make([]Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Names returns the action names in declaration order
func (s ToolSet) Names() []ActionName {
	out := make([]ActionName, len(s.tools))
	for i, t := range s.tools {
		out[i] = t.Name
	}
	return out
}

// Vocabulary returns the action names as plain strings, in declaration order
func (s ToolSet) Vocabulary() []string {
	out := make([]string, len(s.tools))
	for i, t := range s.tools {
		out[i] = string(t.Name)
	}
	return out
}

func (s ToolSet) Contains(name ActionName) bool {
	_, ok := s.index[name]
	return ok
}

// Render returns the function-calling JSON description injected into selector prompts
func (s ToolSet) Render() string {
	return s.rendered
}

type renderedProperty struct {
	Type string `json:"type"`
}

type renderedParameters struct {
	Type       string                      `json:"type"`
	Properties map[string]renderedProperty `json:"properties"`
	Required   []string                    `json:"required"`
}

type renderedFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  renderedParameters `json:"parameters"`
}

type renderedTool struct {
	Type     string           `json:"type"`
	Function renderedFunction `json:"function"`
}

func (s ToolSet) render() (string, error) {
	out := make([]renderedTool, len(s.tools))
	for i, t := range s.tools {
		props := make(map[string]renderedProperty, len(t.Parameters))
		required := []string{}
		for _, p := range t.Parameters {
			props[p.Name] = renderedProperty{Type: p.Type}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		out[i] = renderedTool{
			Type: "function",
			Function: renderedFunction{
				Name:        string(t.Name),
				Description: t.Description,
				Parameters: renderedParameters{
					Type:       "object",
					Properties: props,
					Required:   required,
				},
			},
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}
