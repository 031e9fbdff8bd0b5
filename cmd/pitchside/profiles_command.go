package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pitchside/internal/api"
	"pitchside/internal/language"
	"pitchside/internal/services"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "profiles [language]",
		Short: "List language profiles, or show the vocabulary of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, _, err := ctx.analysisService()
			if err != nil {
				return err
			}
			profiles := svc.Profiles()
			if len(args) == 1 {
				code := language.ToISO2(args[0])
				for _, p := range profiles {
					if p.Code == code {
						if jsonOutput {
							return writeJSON(cmd, p)
						}
						printProfile(cmd, p)
						return nil
					}
				}
				return services.Wrap(services.ErrValidation, "profiles", "lookup", fmt.Sprintf("no profile for %q", args[0]), nil)
			}
			if jsonOutput {
				return writeJSON(cmd, api.ProfilesResponse{Profiles: profiles})
			}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				rows = append(rows, []string{
					p.Code,
					p.Name,
					strconv.Itoa(len(p.EventTags)),
					strconv.Itoa(len(p.Players)),
					strconv.Itoa(len(p.Teams)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]columnSpec{
				{header: "Code"},
				{header: "Language"},
				{header: "Events", align: alignRight},
				{header: "Players", align: alignRight},
				{header: "Teams", align: alignRight},
			}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printProfile(cmd *cobra.Command, p api.ProfileInfo) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(fmt.Sprintf("%s (%s)", p.Name, p.Code), colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Events:  %s\n", strings.Join(p.EventTags, ", "))
	fmt.Fprintf(out, "Players: %s\n", strings.Join(p.Players, ", "))
	fmt.Fprintf(out, "Teams:   %s\n", strings.Join(p.Teams, ", "))
}
