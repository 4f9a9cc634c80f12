// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// BindFlags registers command-line overrides for c on fs. Defaults shown in
// help text are c's current values.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.MatchMode, "match-mode", c.MatchMode, "Report every matching process (all) or the first per executable (first)")
	fs.StringSliceVar(&c.AuxiliaryExecutables, "aux-exe", c.AuxiliaryExecutables, "Helper executables matched alongside every game")
	fs.IntVar(&c.Retry.MaxAttempts, "retry-attempts", c.Retry.MaxAttempts, "Attempts for retried client queries")
	fs.DurationVar(&c.Retry.Interval, "retry-interval", c.Retry.Interval, "Pause between retried client queries")
	fs.IntVar(&c.Scan.MaxDepth, "max-depth", c.Scan.MaxDepth, "Maximum install directory depth to scan (0 = unlimited)")
	fs.DurationVar(&c.Enumeration.CommandTimeout, "enum-timeout", c.Enumeration.CommandTimeout, "Timeout for the process listing command (0 = none)")
}

// ApplyFlags copies every flag set on fs that BindFlags knows about onto c,
// then validates c. It lets flags bound before a config file is loaded take
// precedence over the file.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	target := pflag.NewFlagSet("config", pflag.ContinueOnError)
	c.BindFlags(target)

	var err error
	fs.Visit(func(f *pflag.Flag) {
		dst := target.Lookup(f.Name)
		if dst == nil || err != nil {
			return
		}
		if src, ok := f.Value.(pflag.SliceValue); ok {
			if slice, ok := dst.Value.(pflag.SliceValue); ok {
				err = slice.Replace(src.GetSlice())
				return
			}
		}
		err = dst.Value.Set(f.Value.String())
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c.Validate()
}
