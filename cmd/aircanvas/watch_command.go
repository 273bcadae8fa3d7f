package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/audit"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the session store and check arriving exports",
		Long: "Watch monitors the configured sessions directory and runs integrity\n" +
			"checks on every session file that is created or rewritten there,\n" +
			"reporting a verdict per file. Useful while collecting exports from\n" +
			"another machine.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(store.Dir()); err != nil {
				return fmt.Errorf("watch %s: %w", store.Dir(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (ctrl-c to stop)\n", store.Dir())

			// Writers rarely land a file in one write; debounce per path so a
			// session is checked once per burst.
			pending := make(map[string]time.Time)
			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-cmd.Context().Done():
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					if !strings.HasSuffix(event.Name, ".json") {
						continue
					}
					pending[event.Name] = time.Now()

				case <-ticker.C:
					for path, seen := range pending {
						if time.Since(seen) < 300*time.Millisecond {
							continue
						}
						delete(pending, path)
						checkArrival(cmd, ctx, path, verify)
					}

				case _, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					// Watcher errors are non-fatal; continue watching.
				}
			}
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Also verify arriving sessions replay cleanly")
	return cmd
}

func checkArrival(cmd *cobra.Command, ctx *commandContext, path string, verify bool) {
	out := cmd.OutOrStdout()
	name := filepath.Base(path)

	s, err := ctx.loadSession(path)
	if err != nil {
		fmt.Fprintf(out, "%s  %s  unreadable: %v\n", time.Now().Format("15:04:05"), name, err)
		return
	}

	report := audit.Inspect(s)
	verdict := "ok"
	if !report.OK() {
		verdict = "errors"
	} else if len(report.Issues) > 0 {
		verdict = "warnings"
	}

	if verify && report.OK() {
		replay, err := audit.VerifyReplay(s)
		if err != nil || !replay.OK() {
			verdict = "replay-failed"
		}
	}

	fmt.Fprintf(out, "%s  %s  %s  (%d gestures, %d generations)\n",
		time.Now().Format("15:04:05"), name, verdict, report.Gestures, report.Generations)
	for _, issue := range report.Issues {
		fmt.Fprintf(out, "          %s  %s: %s\n", string(issue.Severity), issue.Code, issue.Message)
	}
}
