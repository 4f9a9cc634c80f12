// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/gamebridge/cliout"
)

type achievementOutput struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Achieved    bool    `json:"achieved"`
	Percent     float32 `json:"percent"`
	IconWidth   uint32  `json:"iconWidth"`
	IconHeight  uint32  `json:"iconHeight"`
}

type achievementsOutput struct {
	Count        uint32              `json:"count"`
	Achievements []achievementOutput `json:"achievements"`
}

func newAchievementsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements [name...]",
		Short: "List achievements with their unlock state, global percentage and icon size",
		Long: "List achievements with their unlock state, global percentage and icon size.\n\n" +
			"Without names every achievement the client reports is listed. Queries that keep " +
			"failing are retried per --retry-attempts and --retry-interval, then report zero values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			acc := a.accessor

			out := achievementsOutput{Count: acc.NumAchievements(ctx)}
			names := args
			if len(names) == 0 {
				names = acc.AchievementNames(ctx)
			}

			out.Achievements = make([]achievementOutput, 0, len(names))
			for _, name := range names {
				icon := acc.Icon(ctx, name)
				out.Achievements = append(out.Achievements, achievementOutput{
					Name:        name,
					DisplayName: acc.DisplayAttribute(ctx, name, "name"),
					Achieved:    acc.IsAchieved(ctx, name),
					Percent:     acc.AchievedPercent(ctx, name),
					IconWidth:   icon.Width,
					IconHeight:  icon.Height,
				})
			}

			return cliout.Print(out, func() {
				if len(out.Achievements) == 0 {
					cliout.Info("No achievements reported (%d total)", out.Count)
					return
				}
				cliout.Header(fmt.Sprintf("Achievements (%d)", out.Count))
				rows := make([]cliout.TableRow, 0, len(out.Achievements))
				for _, ach := range out.Achievements {
					state := "locked"
					if ach.Achieved {
						state = "unlocked"
					}
					rows = append(rows, cliout.TableRow{
						"Name":    ach.Name,
						"Display": ach.DisplayName,
						"State":   state,
						"Global":  fmt.Sprintf("%.1f%%", ach.Percent),
						"Icon":    fmt.Sprintf("%dx%d", ach.IconWidth, ach.IconHeight),
					})
				}
				cliout.Table([]string{"Name", "Display", "State", "Global", "Icon"}, rows)
			})
		},
	}
}
