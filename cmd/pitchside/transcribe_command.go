package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pitchside/internal/api"
	"pitchside/internal/config"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var analyze bool
	var window int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "transcribe <video>",
		Short: "Transcribe the commentary track of a match video",
		Long: "Extracts the commentary audio stream, transcribes it with WhisperX, and prints\n" +
			"timestamped commentary lines. With --analyze the transcript is also analyzed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, logger, err := ctx.analysisService()
			if err != nil {
				return err
			}
			if err := api.CheckTranscriptionDependencies(cfg); err != nil {
				return err
			}
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			req := api.TranscribeRequest{MediaPath: path, Language: languageFlag, Analyze: analyze}
			if cmd.Flags().Changed("window") {
				req.Window = &window
			}
			result, err := svc.TranscribeAndAnalyze(cmd.Context(), api.NewTranscriber(cfg, logger), req)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printTranscript(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Commentary language (code or name)")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "Analyze the transcript")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "Correlation window for --analyze")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printTranscript(cmd *cobra.Command, result api.TranscribeResult) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	t := result.Transcript

	for _, line := range renderSectionHeader("Audio", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Stream", statusInfo, t.Stream, colorize))
	d := t.Diagnostics
	kind := statusOK
	detail := fmt.Sprintf("%.1f dB, speech ratio %.2f", d.VolumeDB, d.SpeechRatio)
	switch {
	case d.IsQuiet:
		kind = statusWarn
		detail += ", quiet"
	case !d.HasPotentialSpeech:
		kind = statusWarn
		detail += ", little speech detected"
	}
	fmt.Fprintln(out, renderStatusLine("Level", kind, detail, colorize))
	fmt.Fprintln(out, renderStatusLine("Coverage", statusInfo, fmt.Sprintf("%.0f%% of %.0fs", t.Coverage*100, d.DurationSeconds), colorize))
	fmt.Fprintln(out, renderStatusLine("Cached", statusInfo, yesNo(t.Cached), colorize))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Transcript", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, t.Text)

	if result.Analysis != nil {
		fmt.Fprintln(out)
		for _, line := range renderSectionHeader("Analysis", colorize) {
			fmt.Fprintln(out, line)
		}
		printAnalysis(cmd, *result.Analysis)
	}
}
