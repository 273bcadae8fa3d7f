package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/tui"
	"github.com/aircanvas/aircanvas/playback"
)

func newReplayCommand(ctx *commandContext) *cobra.Command {
	var speed float64
	var plain bool

	cmd := &cobra.Command{
		Use:   "replay <id-or-file>",
		Short: "Replay a recorded session in real time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.loadSession(args[0])
			if err != nil {
				return err
			}
			if speed <= 0 {
				return fmt.Errorf("speed must be positive, got %v", speed)
			}

			// The TUI needs a terminal; pipes get the plain line printer.
			if plain || !term.IsTerminal(os.Stdout.Fd()) {
				return replayPlain(cmd, s, speed)
			}
			return tui.Run(s, speed)
		},
	}

	cmd.Flags().Float64Var(&speed, "speed", 0, "Playback speed multiplier (defaults to the configured speed)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print events as lines instead of the TUI")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("speed") {
			return nil
		}
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		speed = cfg.Playback.Speed
		return nil
	}

	return cmd
}

// replayPlain plays the session on the wall clock and prints one line per
// delivered event.
func replayPlain(cmd *cobra.Command, s *core.RecordingSession, speed float64) error {
	out := cmd.OutOrStdout()
	done := make(chan struct{})
	events := make(chan core.TimelineEvent, s.EventCount()+1)

	engine := playback.New()
	err := engine.Start(s, func(ev core.TimelineEvent) error {
		events <- ev
		return nil
	}, func(o *playback.RunOptions) {
		o.Speed = speed
		o.OnComplete = func() { close(done) }
	})
	if err != nil {
		return err
	}
	defer engine.Stop()

	fmt.Fprintf(out, "Replaying session %s (%d events at %sx)\n", s.ID, s.EventCount(), formatSpeedFlag(speed))
	for {
		select {
		case ev := <-events:
			fmt.Fprintf(out, "%10.1f ms  %-10s  %s\n", ev.TimestampMs(), ev.Kind, describeEvent(ev))
		case <-done:
			// Drain deliveries that raced completion.
			for {
				select {
				case ev := <-events:
					fmt.Fprintf(out, "%10.1f ms  %-10s  %s\n", ev.TimestampMs(), ev.Kind, describeEvent(ev))
				default:
					fmt.Fprintln(out, "Replay complete")
					return nil
				}
			}
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}

func formatSpeedFlag(speed float64) string {
	return fmt.Sprintf("%g", speed)
}
