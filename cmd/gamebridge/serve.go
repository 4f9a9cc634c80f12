// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jongio/gamebridge/bridge"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/mcpserver"
	"github.com/jongio/gamebridge/version"
)

func newMCPCommand(a *app) *cobra.Command {
	var (
		burst  int
		refill float64
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve game process tools to a host over MCP on stdio",
		Long: "Serve game process tools to a host over MCP on stdio.\n\n" +
			"With metrics.enabled set in the config file, Prometheus metrics for the served " +
			"queries are exposed on metrics.port at /metrics alongside a /health check.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Metrics.Enabled {
				srv := bridge.CreateMetricsServer(a.cfg.Metrics.Port)
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logutil.Error("metrics server stopped", "error", err)
					}
				}()
				defer func() { _ = srv.Close() }()
			}

			srv := mcpserver.New(a.bridge, mcpserver.NewRateLimiter(burst, refill))
			return srv.ServeStdio(appName, version.Version)
		},
	}
	cmd.Flags().IntVar(&burst, "rate-burst", 20, "Calls each tool may make in a burst")
	cmd.Flags().Float64Var(&refill, "rate-refill", 5, "Calls per second refilled for each tool (0 = unlimited)")
	return cmd
}
