package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bitcomplete/revgraph/internal/cmdutil"
)

func main() {
	app := &cli.App{
		Version: "0.1.0",
		Usage:   "commit-graph inspector and preview tool",
		Commands: []*cli.Command{
			logCommand,
			resolveCommand,
			rebaseCommand,
			cleanupCommand,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show verbose debug output",
			},
		},
		Before: func(c *cli.Context) error {
			c.Context = cmdutil.ContextWithDeps(c.Context, makeDeps(c))
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			deps := cmdutil.FromContext(c.Context)
			deps.ErrorLog.Println(err.Error())
			var stackTracer interface {
				StackTrace() errors.StackTrace
			}
			if errors.As(err, &stackTracer) {
				deps.DebugLog.Printf("%+v", stackTracer.StackTrace())
			}
			os.Exit(1)
		},
	}
	_ = app.Run(os.Args)
}

func makeDeps(c *cli.Context) *cmdutil.Deps {
	debugWriter := ioutil.Discard
	if c.Bool("verbose") {
		debugWriter = os.Stdout
	}
	return &cmdutil.Deps{
		ErrorLog: log.New(os.Stderr, "", 0),
		InfoLog:  log.New(os.Stdout, "", 0),
		DebugLog: log.New(debugWriter, "[debug] ", log.Ldate|log.Lmicroseconds),
	}
}
