package main

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

// errInvalid is returned by commands whose subject turned out invalid.
var errInvalid = errors.New("invalid")

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "clverify",
		Short:         "Verify anonymous credential presentation proofs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			clverify.Logger.SetOutput(cmd.ErrOrStderr())
			if verbose {
				clverify.Logger.SetLevel(logrus.DebugLevel)
			} else {
				clverify.Logger.SetLevel(logrus.WarnLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newVerifyCmd(), newFingerprintCmd(), newNonceCmd(), newConvertCmd())
	return root
}

// run executes the command line and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitValid
	case errors.Is(err, errInvalid):
		return exitInvalid
	default:
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}
}
