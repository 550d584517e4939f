package oracle

import "testing"

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "markdown fence",
			in:   "Here you go:\n```json\n{\"questions\":[]}\n```\nHope that helps!",
			want: `{"questions":[]}`,
			ok:   true,
		},
		{
			name: "surrounding prose",
			in:   `Sure! The result is {"hire_probability": 0.7} as requested.`,
			want: `{"hire_probability": 0.7}`,
			ok:   true,
		},
		{
			name: "nested objects",
			in:   `x {"a":{"b":{"c":3}},"d":4} y`,
			want: `{"a":{"b":{"c":3}},"d":4}`,
			ok:   true,
		},
		{
			name: "braces inside string values",
			in:   `{"text":"use {curly} braces \" here"}`,
			want: `{"text":"use {curly} braces \" here"}`,
			ok:   true,
		},
		{
			name: "unbalanced",
			in:   `{"a": {"b": 1}`,
			ok:   false,
		},
		{
			name: "no object at all",
			in:   "I cannot answer that.",
			ok:   false,
		},
		{
			name: "empty input",
			in:   "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok=%v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
