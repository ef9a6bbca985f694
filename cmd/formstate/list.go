package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available forms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		store, err := newOrchestrator(cmd, logger).Store()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range store.Names() {
			def, _ := store.Form(name)
			fmt.Fprintf(out, "%-16s %-28s %v\n", name, def.Title, def.Schema.IDs())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
