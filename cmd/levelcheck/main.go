// Command levelcheck parses and compiles level files and reports problems a
// player would only hit at runtime: broken door destinations, channels with no
// receptor and unplaced spawns.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adumbration/adumbration/assets"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

func main() {
	strict := flag.Bool("strict", false, "treat warnings as errors")
	flag.Parse()

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuning: %v (using defaults)\n", err)
	}

	names := flag.Args()
	if len(names) == 0 {
		names = levels.Names()
	}

	c := checker{tuning: tuning, sheets: assets.NewLibrary(int(tuning.TileSize)), known: levels.Names()}
	failed := false
	for _, name := range names {
		report := c.check(name)
		for _, warn := range report.Warnings {
			fmt.Printf("%s: warning: %s\n", name, warn)
		}
		for _, e := range report.Errors {
			fmt.Printf("%s: error: %v\n", name, e)
		}
		if len(report.Errors) > 0 || (*strict && len(report.Warnings) > 0) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
