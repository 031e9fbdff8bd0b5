package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitchside/internal/api"
)

func newHighlightsCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var goalsOnly bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "highlights [file|-]",
		Short: "List highlights and the merchandise placements planned for goals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, source, err := readCommentary(cmd, args)
			if err != nil {
				return err
			}
			svc, _, _, err := ctx.analysisService()
			if err != nil {
				return err
			}
			resp, err := svc.Highlights(cmd.Context(), api.AnalyzeRequest{Text: text, Language: languageFlag, Source: source})
			if err != nil {
				return err
			}
			if goalsOnly {
				resp.Highlights = resp.Goals
			}
			if jsonOutput {
				return writeJSON(cmd, resp)
			}
			printHighlights(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Commentary language (code or name)")
	cmd.Flags().BoolVar(&goalsOnly, "goals", false, "Only list goals")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printHighlights(cmd *cobra.Command, resp api.HighlightsResponse) {
	out := cmd.OutOrStdout()
	if len(resp.Highlights) == 0 {
		fmt.Fprintln(out, "No highlights found.")
		return
	}
	rows := make([][]string, 0, len(resp.Highlights))
	for _, h := range resp.Highlights {
		rows = append(rows, []string{h.Timestamp, h.Type, h.Description})
	}
	fmt.Fprintln(out, renderTable([]columnSpec{
		{header: "Time", align: alignRight},
		{header: "Type"},
		{header: "Description", maxWidth: 70},
	}, rows))

	if len(resp.Placements) == 0 {
		return
	}
	fmt.Fprintln(out)
	placements := make([][]string, 0, len(resp.Placements))
	for _, p := range resp.Placements {
		placements = append(placements, []string{
			strconv.Itoa(p.TimeSeconds),
			strconv.Itoa(p.DurationSeconds),
			p.Player,
			p.Team,
			fmt.Sprintf("$%.2f", p.Price),
			yesNo(p.Resolved),
		})
	}
	fmt.Fprintln(out, renderTable([]columnSpec{
		{header: "At (s)", align: alignRight},
		{header: "For (s)", align: alignRight},
		{header: "Jersey"},
		{header: "Team"},
		{header: "Price", align: alignRight},
		{header: "Named"},
	}, placements))
}

