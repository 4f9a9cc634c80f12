// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/gamebridge/cliout"
	"github.com/jongio/gamebridge/proctable"
	"github.com/jongio/gamebridge/security"
)

type scanOutput struct {
	Root        string   `json:"root"`
	Executables []string `json:"executables"`
}

func newScanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the candidate executables found under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if err := security.ValidatePath(root); err != nil {
				return err
			}

			names := a.opts.Scanner.Scan(root)
			if names == nil {
				names = []string{}
			}
			return cliout.Print(scanOutput{Root: root, Executables: names}, func() {
				if len(names) == 0 {
					cliout.Info("No executables found under %s", root)
					return
				}
				cliout.Header(root)
				for _, name := range names {
					cliout.Plain("   %s", name)
				}
			})
		},
	}
}

func newPSCommand(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "ps",
		Short: "Print the process table used for matching",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records := a.opts.Lister.List(cmd.Context())
			if filter != "" {
				kept := make([]proctable.Record, 0, len(records))
				for _, r := range records {
					if strings.Contains(strings.ToLower(r.Name), strings.ToLower(filter)) {
						kept = append(kept, r)
					}
				}
				records = kept
			}

			return cliout.Print(records, func() {
				if len(records) == 0 {
					cliout.Warning("Process table is empty")
					return
				}
				rows := make([]cliout.TableRow, 0, len(records))
				for _, r := range records {
					rows = append(rows, cliout.TableRow{
						"Name": r.Name,
						"PID":  strconv.FormatUint(uint64(r.PID), 10),
						"Path": r.ExecutablePath,
					})
				}
				cliout.Table([]string{"Name", "PID", "Path"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Only show processes whose name contains this text (case-insensitive)")
	return cmd
}
