// Command extrinsic builds, signs and submits extrinsics to a ledger node
// and reads values from its storage.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	if err := run(ctx, a, os.Args[1:]); err != nil {
		printError(a.stderr, err)
		stop()
		os.Exit(1)
	}
}

// run executes the command line args and releases everything the command
// opened, whether or not it succeeded.
func run(ctx context.Context, a *app, args []string) error {
	defer a.teardown()
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
