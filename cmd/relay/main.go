package main

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// exitError carries the exit code chosen by a subcommand.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		code := exitRuntime
		if e, ok := err.(*exitError); ok {
			code = e.code
		}
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("relay terminated with error: %v", err))
		os.Exit(code)
	}
}

func newRootCommand() *cobra.Command {
	var envFiles []string
	root := &cobra.Command{
		Use:           "relay",
		Short:         "Relay chat messages as configured personas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files loaded before reading the environment")
	root.AddCommand(
		newServeCommand(&envFiles),
		newPersonasCommand(),
		newInspectCommand(),
	)
	return root
}
