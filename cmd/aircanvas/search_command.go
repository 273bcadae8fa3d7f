package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/library"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored sessions by prompt text and gesture kinds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			ids, err := store.List()
			if err != nil {
				return err
			}

			// The catalog is rebuilt per invocation; the store on disk is the
			// source of truth.
			catalog := library.NewInMemoryCatalog()
			indexed := 0
			for _, id := range ids {
				s, err := store.Get(id)
				if err != nil {
					continue
				}
				if err := catalog.Add(s); err != nil {
					continue
				}
				indexed++
			}

			results, err := catalog.Search(args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No matches for %q in %d sessions\n", args[0], indexed)
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				content := r.Content
				if len(content) > 64 {
					content = content[:61] + "..."
				}
				rows = append(rows, []string{
					r.SessionID,
					strconv.FormatFloat(r.Score, 'f', 2, 64),
					content,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Session", "Score", "Matched Content"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results to return")
	return cmd
}
