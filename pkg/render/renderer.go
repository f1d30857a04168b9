package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

// placeholderRe matches {name} and {{name}} markers. Names may be dotted
// paths into nested maps, e.g. {user.firstName}.
var placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_.]+)\}\}|\{([a-zA-Z0-9_.]+)\}`)

// Renderer substitutes placeholders in template content.
//
// Resolution order: call-site variables > template-declared defaults >
// built-ins (currentTime, currentDate). Unresolved placeholders render as an
// empty string; rendering never fails. Every substituted value is escaped
// against the HTML metacharacters because template content ends up in shared
// UI and may be user- or admin-influenced.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererWithClock pins the clock, for tests.
func NewRendererWithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

func (r *Renderer) Render(content string, vars map[string]interface{}, defaults map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(match string) string {
		name := strings.Trim(match, "{}")

		if v, ok := lookupPath(vars, name); ok {
			return html.EscapeString(stringify(v))
		}
		if d, ok := defaults[name]; ok {
			return html.EscapeString(d)
		}
		if b, ok := r.builtin(name); ok {
			return html.EscapeString(b)
		}
		return ""
	})
}

func (r *Renderer) builtin(name string) (string, bool) {
	switch name {
	case "currentTime":
		return r.now().Format("15:04"), true
	case "currentDate":
		return r.now().Format("January 2, 2006"), true
	}
	return "", false
}

// lookupPath resolves a dotted path through nested maps.
func lookupPath(vars map[string]interface{}, path string) (interface{}, bool) {
	if vars == nil {
		return nil, false
	}

	parts := strings.Split(path, ".")
	var current interface{} = vars
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
