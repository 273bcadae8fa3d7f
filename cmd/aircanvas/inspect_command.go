package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/audit"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var verify bool
	var speed float64

	cmd := &cobra.Command{
		Use:   "inspect <id-or-file>",
		Short: "Check a session for structural problems",
		Long: "Inspect runs static integrity checks over a recorded session. With\n" +
			"--verify it additionally replays the session against a simulated clock\n" +
			"and confirms every event is delivered in order.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.loadSession(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report := audit.Inspect(s)
			fmt.Fprintf(out, "Session:   %s\n", report.SessionID)
			fmt.Fprintf(out, "Events:    %d gestures, %d generations, %s\n",
				report.Gestures, report.Generations, formatDurationMs(report.DurationMs))

			if len(report.Issues) == 0 {
				fmt.Fprintln(out, "Issues:    none")
			} else {
				rows := make([][]string, 0, len(report.Issues))
				for _, issue := range report.Issues {
					rows = append(rows, []string{string(issue.Severity), issue.Code, issue.Message})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"Severity", "Code", "Message"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
			}

			if verify {
				replay, err := audit.VerifyReplay(s, func(o *audit.ReplayOptions) {
					o.Speed = speed
				})
				if err != nil {
					return fmt.Errorf("verify replay: %w", err)
				}
				fmt.Fprintf(out, "Replay:    delivered %d/%d events, completed=%v\n",
					replay.Delivered, replay.Expected, replay.Completed)
				for _, issue := range replay.Issues {
					fmt.Fprintf(out, "           %s: %s\n", issue.Code, issue.Message)
				}
				if !replay.OK() {
					return fmt.Errorf("replay verification failed for session %s", s.ID)
				}
			}

			if !report.OK() {
				return fmt.Errorf("session %s has integrity errors", s.ID)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Also verify the session replays cleanly")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "Replay speed used with --verify")
	return cmd
}
