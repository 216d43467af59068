package cmd

import (
	"context"

	"github.com/ardnew/freshmark/cli/cmd/repl"
	"github.com/ardnew/freshmark/engine"
	"github.com/ardnew/freshmark/props"
)

// Repl starts an interactive evaluator for section programs.
type Repl struct {
	Properties []string `help:"Property file(s) (YAML or JSON)" short:"P"                       type:"existingfile"`
	Set        []string `help:"Set a property value"            short:"D" placeholder:"key=value"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	table, err := props.Load(r.Properties...)
	if err != nil {
		return ErrLoadProps.Wrap(err)
	}

	err = table.SetPairs(r.Set...)
	if err != nil {
		return ErrLoadProps.Wrap(err)
	}

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache path undefined")
	}

	return repl.Run(ctx, table, engine.New(table), cacheDir)
}
