// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/spf13/cobra"

	"github.com/jongio/gamebridge/bridge"
	"github.com/jongio/gamebridge/cliout"
	"github.com/jongio/gamebridge/config"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/sdk"
	"github.com/jongio/gamebridge/version"
)

const appName = "gamebridge"

// newClient builds the client the bridge and accessor query. Tests replace it.
var newClient = func(cfg *config.Config) sdk.Client {
	return sdk.NewStatic(cfg.InstallDirs)
}

// app carries the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	debug      bool
	structured bool
	output     string
	noColor    bool

	cfg      *config.Config
	opts     bridge.Options
	bridge   *bridge.Bridge
	client   *sdk.Guarded
	accessor *sdk.Accessor
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Find and watch the running processes of installed games",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a YAML config file (default $"+config.EnvConfig+")")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&a.structured, "structured-logs", false, "Write logs as JSON")
	pf.StringVarP(&a.output, "output", "o", "default", "Output format (default, json)")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	config.Default().BindFlags(pf)

	root.AddCommand(
		newFindCommand(a),
		newAliveCommand(a),
		newWindowCommand(a),
		newScanCommand(a),
		newPSCommand(a),
		newAchievementsCommand(a),
		newMCPCommand(a),
		version.NewCommand(version.New(appName)),
	)
	return root
}

// setup loads configuration, applies flag overrides, configures logging and
// output, and builds the bridge and the achievement accessor.
func (a *app) setup(cmd *cobra.Command) error {
	if err := cliout.SetFormat(a.output); err != nil {
		return err
	}
	if a.noColor {
		cliout.NoColor()
	}

	cfg, err := config.Load(config.ResolvePath(a.configPath))
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if a.debug {
		cfg.Log.Debug = true
	}
	if a.structured {
		cfg.Log.Structured = true
	}
	a.cfg = cfg

	setupLogging(cfg.Log)

	breaker := cfg.BreakerConfig()
	if cfg.Metrics.Enabled {
		breaker.OnStateChange = bridge.RecordBreakerState
	}
	a.client = sdk.NewGuarded(newClient(cfg), breaker)
	a.accessor = sdk.NewAccessor(a.client, cfg.RetryPolicy())
	a.opts = cfg.BridgeOptions(a.client)
	a.bridge = bridge.New(a.opts)
	return nil
}

func setupLogging(cfg config.LogConfig) {
	logutil.SetupLogger(cfg.Debug, cfg.Structured)
	if cfg.Dir == "" {
		return
	}
	if msg, err := logutil.SetupFileLogger(cfg.Dir, cfg.Debug, cfg.Structured); err != nil {
		logutil.Warn(msg, "error", err)
	}
}
