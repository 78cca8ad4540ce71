package main

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bitcomplete/revgraph/hashset"
	"github.com/bitcomplete/revgraph/ingest"
)

var rebaseCommand = &cli.Command{
	Name:      "rebase",
	Usage:     "preview rebasing one or more commits onto a destination",
	ArgsUsage: "<src...> <dest>",
	Action:    runRebase,
}

func runRebase(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return errors.New("usage: plz rebase <src...> <dest>")
	}
	srcNames, destName := args[:len(args)-1], args[len(args)-1]

	result, err := ingest.FromRepository(c.Context, ingest.Options{})
	if err != nil {
		return err
	}

	var srcHashes []hashset.Hash
	for _, name := range srcNames {
		commit := result.Dag.Resolve(name)
		if commit == nil {
			return errors.Errorf("no such name: %s", name)
		}
		srcHashes = append(srcHashes, commit.Hash)
	}
	destCommit := result.Dag.Resolve(destName)
	if destCommit == nil {
		return errors.Errorf("no such name: %s", destName)
	}

	preview := result.Dag.Rebase(hashset.New(srcHashes...), &destCommit.Hash, time.Now())
	out, err := preview.RenderASCII(nil)
	if err != nil {
		return err
	}
	fmt.Println(out)

	confirmed := false
	prompt := &survey.Confirm{Message: "apply this rebase?"}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return errors.WithStack(err)
	}
	if !confirmed {
		fmt.Println("not applied (preview only)")
		return nil
	}
	fmt.Println("plz rebase only previews changes; nothing is written to the repository")
	return nil
}
