package render

import (
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
}

func TestRender(t *testing.T) {
	r := NewRendererWithClock(fixedClock)

	tests := []struct {
		name     string
		content  string
		vars     map[string]interface{}
		defaults map[string]string
		want     string
	}{
		{
			name:    "single brace placeholder",
			content: "Hi {firstName}!",
			vars:    map[string]interface{}{"firstName": "Jo"},
			want:    "Hi Jo!",
		},
		{
			name:    "double brace placeholder",
			content: "Next slot {{nextAvailable}}",
			vars:    map[string]interface{}{"nextAvailable": "Tomorrow 09:00"},
			want:    "Next slot Tomorrow 09:00",
		},
		{
			name:     "defaults fill missing vars",
			content:  "Hello {name}",
			defaults: map[string]string{"name": "there"},
			want:     "Hello there",
		},
		{
			name:    "vars win over defaults",
			content: "Hello {name}",
			vars:    map[string]interface{}{"name": "Jo"},
			defaults: map[string]string{
				"name": "there",
			},
			want: "Hello Jo",
		},
		{
			name:    "dotted path",
			content: "Dept: {agent.department}",
			vars: map[string]interface{}{
				"agent": map[string]interface{}{"department": "Support"},
			},
			want: "Dept: Support",
		},
		{
			name:    "unresolved renders empty",
			content: "Hi {missing}, welcome",
			want:    "Hi , welcome",
		},
		{
			name:    "builtin currentTime",
			content: "It is {currentTime}",
			want:    "It is 14:30",
		},
		{
			name:    "builtin currentDate",
			content: "Today: {{currentDate}}",
			want:    "Today: June 2, 2025",
		},
		{
			name:    "non-string value",
			content: "Queue position {position}",
			vars:    map[string]interface{}{"position": 3},
			want:    "Queue position 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Render(tt.content, tt.vars, tt.defaults)
			if got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	r := NewRendererWithClock(fixedClock)

	got := r.Render("Hi {firstName}, next slot {{nextAvailable}}", map[string]interface{}{
		"firstName":     "<b>Jo</b>",
		"nextAvailable": `"soon" & 'late'`,
	}, nil)

	want := "Hi &lt;b&gt;Jo&lt;/b&gt;, next slot &#34;soon&#34; &amp; &#39;late&#39;"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderIdempotentOnResolvedContent(t *testing.T) {
	r := NewRendererWithClock(fixedClock)

	resolved := r.Render("Hi {firstName}!", map[string]interface{}{"firstName": "Jo"}, nil)
	again := r.Render(resolved, map[string]interface{}{"firstName": "Jo"}, nil)
	if resolved != again {
		t.Errorf("second render changed output: %q -> %q", resolved, again)
	}
}
