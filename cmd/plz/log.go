package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bitcomplete/revgraph/dag"
	"github.com/bitcomplete/revgraph/hashset"
	"github.com/bitcomplete/revgraph/ingest"
)

var logCommand = &cli.Command{
	Name:      "log",
	Usage:     "render the commit graph",
	ArgsUsage: "[ref...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "all",
			Usage: "show every commit of obsolete stacks instead of condensing them",
		},
	},
	Action: runLog,
}

func runLog(c *cli.Context) error {
	result, err := ingest.FromRepository(c.Context, ingest.Options{})
	if err != nil {
		return err
	}

	var scope *hashset.Set
	if refs := c.Args().Slice(); len(refs) > 0 {
		var hashes []dag.Hash
		for _, ref := range refs {
			commit := result.Dag.Resolve(ref)
			if commit == nil {
				return errors.Errorf("no such name: %s", ref)
			}
			hashes = append(hashes, commit.Hash)
		}
		heads := hashset.New(hashes...)
		s := result.Dag.Ancestors(heads, nil)
		scope = &s
	}

	condense := !c.Bool("all")
	subset := result.Dag.SubsetForRendering(scope, condense)

	var out string
	if c.Bool("verbose") {
		out, err = result.Dag.RenderASCIIDebug(&subset)
	} else {
		out, err = result.Dag.RenderASCII(&subset)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
