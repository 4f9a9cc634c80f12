// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cliout formats gamebridge command output as human-readable text or
// JSON.
//
// Color is disabled automatically when stdout is not a terminal or NO_COLOR
// is set. Symbols fall back to ASCII on legacy Windows consoles.
//
//	if err := cliout.SetFormat("json"); err != nil {
//	    return err
//	}
//	return cliout.Print(matches, func() {
//	    cliout.Table([]string{"PID", "Path"}, rows)
//	})
//
// Print marshals the data in JSON mode and calls the formatter otherwise.
package cliout
