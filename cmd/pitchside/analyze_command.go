package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pitchside/internal/api"
	"pitchside/internal/commentary"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var window int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Extract the commentary timeline from text",
		Long: "Reads commentary from a file or stdin and prints one row per timestamp with the\n" +
			"events, players, and teams mentioned nearby.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, source, err := readCommentary(cmd, args)
			if err != nil {
				return err
			}
			svc, _, _, err := ctx.analysisService()
			if err != nil {
				return err
			}
			req := api.AnalyzeRequest{Text: text, Language: languageFlag, Source: source}
			if cmd.Flags().Changed("window") {
				req.Window = &window
			}
			resp, err := svc.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, resp)
			}
			printAnalysis(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Commentary language (code or name, e.g. es, Spanish)")
	cmd.Flags().IntVarP(&window, "window", "w", commentary.DefaultWindow, "Characters around a timestamp searched for events and names")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printAnalysis(cmd *cobra.Command, resp api.AnalyzeResponse) {
	out := cmd.OutOrStdout()
	if len(resp.Rows) == 0 {
		fmt.Fprintln(out, "No timestamps found.")
		return
	}
	rows := make([][]string, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rows = append(rows, []string{row.Time, row.Tags, row.Context})
	}
	fmt.Fprintln(out, renderTable([]columnSpec{
		{header: "Time", align: alignRight},
		{header: "Tags", maxWidth: 48},
		{header: "Context", maxWidth: 60},
	}, rows))
	fmt.Fprintf(out, "%d timestamps, %d highlights (%d goals), %d general mentions [%s]\n",
		resp.Summary.Timestamps, resp.Summary.Highlights, resp.Summary.Goals, resp.Summary.Mentions, resp.Language)
}
