// Command spliteda loads a raw EDA recording and the segment folders cut
// from it, and draws the recording with the segments marked.
//
// Example:
//
//	spliteda plot --raw Data/EDA/Experiment1/2023-09-22/eda.csv \
//	    --segments Data-Post-Processing/2023-09-22/Hao --label "2023-09-22 Hao"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	_ "time/tzdata"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
