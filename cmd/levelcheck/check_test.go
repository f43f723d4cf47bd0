package main

import (
	"strings"
	"testing"

	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

func TestEmbeddedLevelsHaveNoErrors(t *testing.T) {
	c := checker{tuning: prefabs.DefaultTuning(), known: levels.Names()}
	for _, name := range levels.Names() {
		t.Run(name, func(t *testing.T) {
			r := c.check(name)
			if len(r.Errors) != 0 {
				t.Fatalf("unexpected errors: %v", r.Errors)
			}
		})
	}
}

func TestCheckLayout(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		errors   int
		warnings []string
	}{
		{
			name:   "unknown destination",
			text:   "3,3\n0,D9,0\n0,S,0\n0,0,0\n",
			errors: 1,
		},
		{
			name:     "channel without receptor",
			text:     "3,3\n0,d1,0\n0,S,0\n0,0,0\n",
			warnings: []string{"channel 1 has no receptor"},
		},
		{
			name:     "receptor drives nothing",
			text:     "3,3\n0,R2,0\n0,S,0\n0,0,0\n",
			warnings: []string{"channel 2 drives nothing"},
		},
		{
			name:     "no spawn",
			text:     "3,3\n0,0,0\n0,_,0\n0,0,0\n",
			warnings: []string{"no spawn tile"},
		},
		{
			name:     "two spawns",
			text:     "4,3\n0,0,0,0\n0,S,S,0\n0,0,0,0\n",
			warnings: []string{"2 spawn tiles"},
		},
		{
			name:   "clean room",
			text:   "3,3\n0,0,0\n0,S,0\n0,0,0\n",
			errors: 0,
		},
	}

	c := checker{tuning: prefabs.DefaultTuning(), known: []string{"h", "1"}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout, err := levels.Parse(tc.text)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			r := c.checkLayout("t", layout)
			if len(r.Errors) != tc.errors {
				t.Fatalf("expected %d errors, got %v", tc.errors, r.Errors)
			}
			for _, want := range tc.warnings {
				found := false
				for _, got := range r.Warnings {
					if strings.Contains(got, want) {
						found = true
					}
				}
				if !found {
					t.Fatalf("missing warning %q in %v", want, r.Warnings)
				}
			}
		})
	}
}
