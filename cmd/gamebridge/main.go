// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command gamebridge finds the running processes of installed games, checks
// their liveness, and serves the same queries to hosts over MCP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jongio/gamebridge/cliout"
	"github.com/jongio/gamebridge/logutil"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defer func() { _ = logutil.Close() }()

	root := newRootCommand()
	root.SetArgs(args)
	err := root.Execute()

	var exit *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	default:
		cliout.Error("%v", err)
		return 1
	}
}

// exitError ends the process with code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
