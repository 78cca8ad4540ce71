package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bitcomplete/revgraph/ingest"
)

var cleanupCommand = &cli.Command{
	Name:   "cleanup",
	Usage:  "remove obsolete commits with no remaining non-obsolete descendant",
	Action: runCleanup,
}

func runCleanup(c *cli.Context) error {
	result, err := ingest.FromRepository(c.Context, ingest.Options{})
	if err != nil {
		return err
	}

	before := result.Dag.All()
	after := result.Dag.Cleanup(nil)
	removed := before.Subtract(after.All())

	if removed.Size() == 0 {
		fmt.Println("nothing to clean up")
		return nil
	}
	fmt.Printf("removed %d obsolete commit(s):\n", removed.Size())
	for _, h := range removed.ToHashes() {
		fmt.Printf("  %s\n", h)
	}
	return nil
}
