package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "plain sentence",
			input:    "hola mundo",
			contains: []string{"<p>hola mundo</p>"},
		},
		{
			name:     "emphasis",
			input:    "Please send the **final** report.",
			contains: []string{"<strong>final</strong>"},
		},
		{
			name:     "bullet list",
			input:    "- one\n- two",
			contains: []string{"<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:     "raw html dropped",
			input:    "<script>alert(1)</script>\n\nsafe",
			contains: []string{"safe"},
			excludes: []string{"<script"},
		},
		{
			name:     "unsafe link scheme",
			input:    "[click](javascript:alert(1))",
			excludes: []string{`href="javascript:`},
		},
		{
			name:     "text is escaped",
			input:    "5 < 6 & 7 > 3",
			contains: []string{"5 &lt; 6 &amp; 7 &gt; 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(ToHTML(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("did not expect %q in %q", bad, got)
				}
			}
		})
	}
}
