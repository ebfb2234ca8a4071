package dochooks

import (
	"fmt"
	"regexp"
	"strconv"
)

// HookType is the kind of hook an annotation binds a method to.
type HookType string

// Hook types
const (
	Action    HookType = "action"    // @action hook_name priority
	Filter    HookType = "filter"    // @filter filter_name priority
	Shortcode HookType = "shortcode" // @shortcode shortcode_name
)

// DefaultPriority is used when an annotation carries no priority.
const DefaultPriority = 10

// ParseHookType converts a keyword into a HookType.
func ParseHookType(s string) (HookType, error) {
	switch t := HookType(s); t {
	case Action, Filter, Shortcode:
		return t, nil
	}
	return "", fmt.Errorf("unknown hook type %q", s)
}

// annotationPattern matches "@<type> <name> [priority]" anywhere in a doc comment.
var annotationPattern = regexp.MustCompile(`@(filter|action|shortcode)\s+([a-z0-9\-./_]+)(?:\s+(\d+))?`)

// Annotation represents a parsed @action, @filter or @shortcode marker.
type Annotation struct {
	Type        HookType
	Name        string
	Priority    int
	HasPriority bool
}

// PriorityOr returns the annotated priority, or def when none was given.
func (a Annotation) PriorityOr(def int) int {
	if a.HasPriority {
		return a.Priority
	}
	return def
}

// String renders the annotation back into its comment form.
func (a Annotation) String() string {
	if a.HasPriority {
		return fmt.Sprintf("@%s %s %d", a.Type, a.Name, a.Priority)
	}
	return fmt.Sprintf("@%s %s", a.Type, a.Name)
}

// Match extracts every hook annotation from a doc comment, in source order.
func Match(doc string) []Annotation {
	if doc == "" {
		return nil
	}

	var annotations []Annotation
	for _, m := range annotationPattern.FindAllStringSubmatch(doc, -1) {
		a := Annotation{
			Type: HookType(m[1]),
			Name: m[2],
		}
		if m[3] != "" {
			// Out-of-range priorities fall back to the default.
			if p, err := strconv.Atoi(m[3]); err == nil {
				a.Priority = p
				a.HasPriority = true
			}
		}
		annotations = append(annotations, a)
	}
	return annotations
}
