package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

var fillCmd = &cobra.Command{
	Use:   "fill <form>",
	Short: "Fill a form interactively in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		format, _ := cmd.Flags().GetString("format")
		renderer := tui.New(
			tui.WithOutputFormat(tui.OutputFormat(format)),
			tui.WithTheme(tui.Theme{InfoPrefix: "» ", ErrorPrefix: "✗ "}),
		)

		req, err := requestFromFlags(cmd, args)
		if err != nil {
			return err
		}
		req.Renderer = renderer.Name()

		gen := newOrchestrator(cmd, logger)
		registry, err := gen.Registry()
		if err != nil {
			return err
		}
		if !registry.Has(renderer.Name()) {
			if err := registry.Register(renderer); err != nil {
				return err
			}
		}

		out, err := gen.Generate(context.Background(), req)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	fillCmd.Flags().String("format", string(tui.OutputFormatJSON), "Output format: json, form or pretty")
	addSchemaFlags(fillCmd)
	rootCmd.AddCommand(fillCmd)
}
