package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"studio.subject", cfg.Studio.Subject},
				{"studio.style", cfg.Studio.Style},
				{"studio.intensity", fmt.Sprintf("%g", cfg.Studio.Intensity)},
				{"studio.trigger_gesture", cfg.Studio.TriggerGesture},
				{"studio.max_generations", fmt.Sprintf("%d", cfg.Studio.MaxGenerations)},
				{"generator.provider", cfg.Generator.Provider},
				{"generator.model", cfg.Generator.Model},
				{"generator.size", cfg.Generator.Size},
				{"refiner.provider", cfg.Refiner.Provider},
				{"refiner.model", cfg.Refiner.Model},
				{"storage.sessions_dir", cfg.Storage.SessionsDir},
				{"playback.speed", fmt.Sprintf("%g", cfg.Playback.Speed)},
				{"logging.level", cfg.Logging.Level},
				{"logging.format", cfg.Logging.Format},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Key", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
