package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bitcomplete/revgraph/ingest"
)

var resolveCommand = &cli.Command{
	Name:      "resolve",
	Usage:     "resolve a name or hash prefix to a commit hash",
	ArgsUsage: "<name>",
	Action:    runResolve,
}

func runResolve(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("usage: plz resolve <name>")
	}

	result, err := ingest.FromRepository(c.Context, ingest.Options{})
	if err != nil {
		return err
	}

	commit := result.Dag.Resolve(name)
	if commit == nil {
		// The core reports "no match" and "ambiguous" identically (a nil
		// result); disambiguate here by counting hex-prefix matches
		// ourselves so the CLI can give a more useful message.
		matches := 0
		for _, v := range result.Dag.Values() {
			if len(name) > 0 && len(name) <= len(string(v.Hash)) && string(v.Hash)[:len(name)] == name {
				matches++
			}
		}
		if matches > 1 {
			return errors.Errorf("ambiguous prefix: %s", name)
		}
		return errors.Errorf("no such name: %s", name)
	}
	fmt.Println(commit.Hash)
	return nil
}
