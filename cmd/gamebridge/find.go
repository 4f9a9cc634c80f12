// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/gamebridge/cliout"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/matcher"
	"github.com/jongio/gamebridge/procutil"
	"github.com/jongio/gamebridge/security"
)

type findOutput struct {
	AppID     uint32          `json:"appid"`
	Processes []matcher.Match `json:"processes"`
}

type aliveOutput struct {
	PID   uint32 `json:"pid"`
	Alive bool   `json:"alive"`
	// CreateTime is the process creation time in milliseconds since the Unix
	// epoch, omitted when the process is not running.
	CreateTime int64 `json:"createTime,omitempty"`
}

type windowOutput struct {
	PID   uint32  `json:"pid"`
	Title *string `json:"title"`
}

func parseID(kind, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an unsigned 32-bit integer", kind, s)
	}
	return uint32(v), nil
}

func newFindCommand(a *app) *cobra.Command {
	var exe string
	cmd := &cobra.Command{
		Use:   "find <appid>",
		Short: "List running processes that belong to an installed game",
		Long: "List running processes that belong to an installed game.\n\n" +
			"Without --exe the game's install directory is scanned for executables, " +
			"which are matched together with the auxiliary executables against the process table.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseID("app ID", args[0])
			if err != nil {
				return err
			}
			if exe != "" {
				if err := security.ValidateExecutableName(exe); err != nil {
					return err
				}
			}

			matches := a.bridge.FindGameProcesses(cmd.Context(), appID, exe)
			return cliout.Print(findOutput{AppID: appID, Processes: matches}, func() {
				if len(matches) == 0 {
					cliout.Info("No running processes found for app %d", appID)
					return
				}
				cliout.Success("Found %d running process(es) for app %d", len(matches), appID)
				rows := make([]cliout.TableRow, 0, len(matches))
				for _, m := range matches {
					rows = append(rows, cliout.TableRow{"PID": strconv.FormatUint(uint64(m.PID), 10), "Executable": m.ExecutablePath})
				}
				cliout.Table([]string{"PID", "Executable"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&exe, "exe", "", "Executable file name to match instead of scanning the install directory")
	return cmd
}

func newAliveCommand(a *app) *cobra.Command {
	var created int64
	cmd := &cobra.Command{
		Use:   "alive <pid>",
		Short: "Report whether a process is running (exit status 1 when it is not)",
		Long: "Report whether a process is running (exit status 1 when it is not).\n\n" +
			"Pass the createTime from an earlier run as --created to keep watching the same " +
			"process: once its PID is reused by another process it reports not running.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID("PID", args[0])
			if err != nil {
				return err
			}

			out := aliveOutput{PID: pid, Alive: a.bridge.IsProcessAlive(pid)}
			if out.Alive && created != 0 {
				out.Alive = procutil.Identity{PID: int32(pid), CreateTime: created}.Alive() // #nosec G115 -- live PIDs fit in int32
			}
			if out.Alive {
				if id, err := procutil.Snapshot(int(pid)); err == nil {
					out.CreateTime = id.CreateTime
				} else {
					logutil.Debug("process identity unavailable", "pid", pid, "error", err)
				}
			}

			err = cliout.Print(out, func() {
				state := "not running"
				if out.Alive {
					state = "running"
				}
				cliout.Label("Process", strconv.FormatUint(uint64(pid), 10))
				cliout.Label("Status", cliout.Status(state))
				if out.CreateTime != 0 {
					cliout.Label("Started", time.UnixMilli(out.CreateTime).Format(time.RFC3339))
				}
			})
			if err != nil {
				return err
			}
			if !out.Alive {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&created, "created", 0, "Creation time (ms since epoch) the process must still have")
	return cmd
}

func newWindowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "window <pid>",
		Short: "Print the title of a window owned by a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID("PID", args[0])
			if err != nil {
				return err
			}

			out := windowOutput{PID: pid}
			if title, ok := a.bridge.FindWindowTitle(cmd.Context(), pid); ok {
				out.Title = &title
			}
			return cliout.Print(out, func() {
				if out.Title == nil {
					cliout.Info("No window found for process %d", pid)
					return
				}
				cliout.Plain("%s", *out.Title)
			})
		},
	}
}
