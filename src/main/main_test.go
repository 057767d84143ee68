package main

import (
	"os"
	"testing"
)

func TestNormalizeFlagDashes(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		out  []string
	}{
		{
			name: "Normalizes double dash flags",
			in:   []string{"scan-overlay", "--scan-once", "--stdout"},
			out:  []string{"scan-overlay", "-scan-once", "-stdout"},
		},
		{
			name: "Normalizes equals form",
			in:   []string{"scan-overlay", "--scan-once=true"},
			out:  []string{"scan-overlay", "-scan-once=true"},
		},
		{
			name: "Leaves other flags unchanged",
			in:   []string{"scan-overlay", "-scan-once", "--other"},
			out:  []string{"scan-overlay", "-scan-once", "--other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			os.Args = tt.in
			normalizeFlagDashes()
			got := os.Args
			os.Args = orig

			if len(got) != len(tt.out) {
				t.Fatalf("Expected len=%d, got %d", len(tt.out), len(got))
			}
			for i := range got {
				if got[i] != tt.out[i] {
					t.Fatalf("Expected arg[%d]=%q, got %q", i, tt.out[i], got[i])
				}
			}
		})
	}
}
