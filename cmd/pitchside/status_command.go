package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show languages, collaborators, and transcription dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, _, err := ctx.analysisService()
			if err != nil {
				return err
			}
			status := svc.Status(cfg)
			if check && status.EntityRecognition {
				status.EntityCheck = "ok"
				if err := svc.CheckEntityRecognition(cmd.Context()); err != nil {
					status.EntityCheck = err.Error()
				}
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Analysis", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Languages", statusInfo, strings.Join(status.Languages, ", "), colorize))
			fmt.Fprintln(out, renderStatusLine("Default language", statusInfo, status.DefaultLanguage, colorize))
			entityKind := statusInfo
			entityMsg := "disabled (local name patterns only)"
			if status.EntityRecognition {
				entityKind = statusOK
				entityMsg = "enabled"
			}
			fmt.Fprintln(out, renderStatusLine("Entity recognition", entityKind, entityMsg, colorize))
			if status.EntityCheck != "" {
				checkKind := statusOK
				if status.EntityCheck != "ok" {
					checkKind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("Entity model", checkKind, status.EntityCheck, colorize))
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Transcription dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, dep := range status.Dependencies {
				kind := statusOK
				msg := dep.Command
				if !dep.Available {
					kind = statusError
					if dep.Optional {
						kind = statusWarn
					}
					msg = dep.Detail
				}
				fmt.Fprintln(out, renderStatusLine(dep.Name, kind, msg, colorize))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&check, "check", false, "Send a test prompt to the entity recognition model")
	return cmd
}
