package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/limbo/lumin/internal/gamification"
)

type LevelsCmd struct {
	Max int `default:"20" help:"Last level to print."`
}

func (c *LevelsCmd) Run(app *App) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "level\tstarts at\tto next\t")
	for l := 1; l <= max(c.Max, 1); l++ {
		fmt.Fprintf(w, "%d\t%d\t%d\t\n", l, gamification.Threshold(l), gamification.XPForLevel(l))
	}
	return w.Flush()
}
