package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

var renderCmd = &cobra.Command{
	Use:   "render <form>",
	Short: "Render a form as HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		req, err := requestFromFlags(cmd, args)
		if err != nil {
			return err
		}
		out, err := newOrchestrator(cmd, logger).Generate(context.Background(), req)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			return os.WriteFile(path, out, 0o644)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	renderCmd.Flags().String("output", "", "Output file (stdout if empty)")
	renderCmd.Flags().String("action", "", "Form action URL")
	addSchemaFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func addSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().String("openapi", "", "OpenAPI document; the form comes from --operation's request body")
	cmd.Flags().String("operation", "", "OpenAPI operation id")
	cmd.Flags().StringArray("options", nil, "Select options as id=a,b,c (repeatable)")
}

func requestFromFlags(cmd *cobra.Command, args []string) (orchestrator.Request, error) {
	var req orchestrator.Request
	if len(args) > 0 {
		req.Form = args[0]
	}
	if path, _ := cmd.Flags().GetString("openapi"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return req, err
		}
		req.OpenAPI = data
		req.OperationID, _ = cmd.Flags().GetString("operation")
	}
	rawOptions, _ := cmd.Flags().GetStringArray("options")
	opts, err := parseOptions(rawOptions)
	if err != nil {
		return req, err
	}
	req.Options = opts
	if action, err := cmd.Flags().GetString("action"); err == nil {
		req.RenderOptions.Action = action
	}
	return req, nil
}
