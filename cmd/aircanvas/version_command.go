package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the aircanvas version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "aircanvas %s (%s/%s)\n",
				aircanvas.Version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
