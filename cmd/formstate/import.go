package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/openapi"
)

var importCmd = &cobra.Command{
	Use:   "import <openapi-file> <operation>",
	Short: "Print the form schema derived from an OpenAPI operation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := openapi.New().Load(context.Background(), data)
		if err != nil {
			return err
		}
		schema, err := doc.Schema(args[1])
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{
			"forms": map[string]any{
				args[1]: map[string]any{"fields": schema},
			},
		}); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
