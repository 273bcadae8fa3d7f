package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/core"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage recorded sessions in the session store",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	sessionsCmd.AddCommand(newSessionsExportCommand(ctx))
	sessionsCmd.AddCommand(newSessionsImportCommand(ctx))
	sessionsCmd.AddCommand(newSessionsDeleteCommand(ctx))

	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			ids, err := store.List()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Session store is empty")
				return nil
			}

			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				s, err := store.Get(id)
				if err != nil {
					rows = append(rows, []string{id, "(unreadable)", "", "", ""})
					continue
				}
				rows = append(rows, []string{
					s.ID,
					s.Metadata.RecordedAt.Format("2006-01-02 15:04:05"),
					formatDurationMs(s.DurationMs),
					strconv.Itoa(len(s.Gestures)),
					strconv.Itoa(len(s.Generations)),
				})
			}

			table := renderTable(
				[]string{"ID", "Recorded", "Duration", "Gestures", "Images"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	var maxEvents int

	cmd := &cobra.Command{
		Use:   "show <id-or-file>",
		Short: "Show session details and timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.loadSession(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", s.ID)
			fmt.Fprintf(out, "Recorded:    %s\n", s.Metadata.RecordedAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintf(out, "Client:      %s\n", s.Metadata.ClientInfo)
			fmt.Fprintf(out, "Version:     %s\n", s.Metadata.Version)
			fmt.Fprintf(out, "Duration:    %s\n", formatDurationMs(s.DurationMs))
			fmt.Fprintf(out, "Gestures:    %d\n", len(s.Gestures))
			fmt.Fprintf(out, "Images:      %d\n", len(s.Generations))
			fmt.Fprintln(out)

			timeline := s.Timeline()
			if len(timeline) == 0 {
				fmt.Fprintln(out, "Timeline is empty")
				return nil
			}

			shown := timeline
			if maxEvents > 0 && len(shown) > maxEvents {
				shown = shown[:maxEvents]
			}
			rows := make([][]string, 0, len(shown))
			for _, ev := range shown {
				rows = append(rows, []string{
					fmt.Sprintf("%.0f", ev.TimestampMs()),
					string(ev.Kind),
					describeEvent(ev),
				})
			}
			table := renderTable(
				[]string{"Time (ms)", "Kind", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(out, table)
			if len(shown) < len(timeline) {
				fmt.Fprintf(out, "(%d more events; raise --events to see them)\n", len(timeline)-len(shown))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxEvents, "events", 20, "Maximum timeline events to show (0 for all)")
	return cmd
}

func newSessionsExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a stored session to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			s, err := store.Get(args[0])
			if err != nil {
				return err
			}

			data, err := codec.ExportSessionIndent(s)
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				target = s.ID + ".json"
			}
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported session %s to %s\n", s.ID, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (defaults to <id>.json)")
	return cmd
}

func newSessionsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a session JSON file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read session file: %w", err)
			}
			s, err := codec.ImportSession(data)
			if err != nil {
				return err
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}
			if err := store.Save(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported session %s (%d gestures, %d images)\n",
				s.ID, len(s.Gestures), len(s.Generations))
			return nil
		},
	}
}

func newSessionsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		},
	}
}

func describeEvent(ev core.TimelineEvent) string {
	switch ev.Kind {
	case core.EventKindGesture:
		detail := string(ev.Gesture.Type)
		if ev.Gesture.Handedness != core.HandednessUnknown {
			detail += " (" + string(ev.Gesture.Handedness) + ")"
		}
		return detail
	case core.EventKindGeneration:
		prompt := ev.Generation.PromptSnapshot
		if len(prompt) > 48 {
			prompt = prompt[:45] + "..."
		}
		return ev.Generation.RequestID + "  " + prompt
	}
	return ""
}

func formatDurationMs(ms float64) string {
	d := time.Duration(ms * float64(time.Millisecond))
	return d.Round(100 * time.Millisecond).String()
}
