package main

import (
	"testing"
)

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"pairs=1,4,8", "area=0.5, 2"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(names) != 2 || names[0] != "pairs" || names[1] != "area" {
		t.Errorf("unexpected names %v", names)
	}
	if len(ranges[0]) != 3 || ranges[0][2] != 8 {
		t.Errorf("unexpected pairs range %v", ranges[0])
	}
	if len(ranges[1]) != 2 || ranges[1][1] != 2 {
		t.Errorf("unexpected area range %v", ranges[1])
	}
}

func TestParseGridRejects(t *testing.T) {
	for _, spec := range []string{"pairs", "=1,2", "pairs=", "pairs=1,x"} {
		if _, _, err := parseGrid([]string{spec}); err == nil {
			t.Errorf("expected error for %q", spec)
		}
	}
}
