package entity

import "testing"

func TestChatTemplateMatches(t *testing.T) {
	tests := []struct {
		name       string
		conditions map[string]string
		context    map[string]string
		want       bool
	}{
		{"no conditions always match", nil, map[string]string{"intent": "job_search"}, true},
		{"single condition met", map[string]string{"intent": "job_search"}, map[string]string{"intent": "job_search"}, true},
		{"single condition unmet", map[string]string{"intent": "job_search"}, map[string]string{"intent": "partnership"}, false},
		{"missing context key", map[string]string{"intent": "job_search"}, map[string]string{}, false},
		{
			"all conditions must hold",
			map[string]string{"intent": "job_search", "option": "remote"},
			map[string]string{"intent": "job_search", "option": "onsite"},
			false,
		},
		{
			"extra context keys ignored",
			map[string]string{"intent": "job_search"},
			map[string]string{"intent": "job_search", "option": "remote"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := &ChatTemplate{Conditions: tt.conditions}
			if got := tpl.Matches(tt.context); got != tt.want {
				t.Errorf("Matches(%v) with conditions %v = %v, want %v", tt.context, tt.conditions, got, tt.want)
			}
		})
	}
}
