// Package cmdutil carries the ambient dependencies plz's commands share:
// the logger triad and anything else a command needs that isn't part of
// its own arguments.
package cmdutil

import (
	"context"
	"io"
	"log"
)

type depsKeyType int

var depsKey depsKeyType

// Deps bundles the loggers every command logs through.
type Deps struct {
	ErrorLog *log.Logger
	InfoLog  *log.Logger
	DebugLog *log.Logger
}

// ContextWithDeps attaches deps to ctx.
func ContextWithDeps(ctx context.Context, deps *Deps) context.Context {
	return context.WithValue(ctx, depsKey, deps)
}

// FromContext returns the Deps attached to ctx, or a Deps of discard
// loggers if none was attached, so a package that logs through it stays
// safe to call without DI wiring (tests, one-off scripts).
func FromContext(ctx context.Context) *Deps {
	deps, _ := ctx.Value(depsKey).(*Deps)
	if deps == nil {
		return &Deps{
			ErrorLog: log.New(io.Discard, "", 0),
			InfoLog:  log.New(io.Discard, "", 0),
			DebugLog: log.New(io.Discard, "", 0),
		}
	}
	return deps
}
