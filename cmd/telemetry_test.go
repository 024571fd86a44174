package cmd

import (
	"strings"
	"testing"
)

func TestPrintEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "estimate done shows elapsed time",
			line: `{"ts":"2026-08-30T12:00:02Z","kind":"estimate_done","run":"r1","method":"stochastic","data":{"seconds":1.234}}`,
			want: []string{"estimate_done", "run=r1", "method=stochastic", "took 1.23s"},
		},
		{
			name: "graph loaded shows size",
			line: `{"ts":"2026-08-30T12:00:01Z","kind":"graph_loaded","run":"r1","data":{"nodes":120,"edges":431}}`,
			want: []string{"graph_loaded", "120 nodes / 431 edges"},
		},
		{
			name: "unknown payload keys fall back to key=value",
			line: `{"ts":"2026-08-30T12:00:00Z","kind":"run_start","run":"r1","data":{"source":"web.txt"}}`,
			want: []string{"run_start", "source=web.txt"},
		},
		{
			name: "invalid JSON is echoed raw",
			line: `{not json`,
			want: []string{"??? {not json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var b strings.Builder
			printEvent(&b, tt.line)
			for _, want := range tt.want {
				if !strings.Contains(b.String(), want) {
					t.Errorf("output %q missing %q", b.String(), want)
				}
			}
		})
	}
}
