package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

var rootCmd = &cobra.Command{
	Use:           "formstate",
	Short:         "Validate, fill and render schema-driven forms",
	Long:          `formstate loads form schemas (YAML/JSON documents or OpenAPI operations) and drives them through the form engine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("schemas", "", "Directory with form schema documents (defaults to the embedded storefront forms)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable development logging on stderr")
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func newOrchestrator(cmd *cobra.Command, logger *zap.Logger, extra ...orchestrator.Option) *orchestrator.Orchestrator {
	opts := []orchestrator.Option{orchestrator.WithLogger(logger)}
	if dir, _ := cmd.Flags().GetString("schemas"); strings.TrimSpace(dir) != "" {
		opts = append(opts, orchestrator.WithSchemaFS(os.DirFS(dir)))
	}
	return orchestrator.New(append(opts, extra...)...)
}

// parseOptions turns repeated "id=a,b,c" flags into select options.
func parseOptions(raw []string) (map[string][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string][]string, len(raw))
	for _, entry := range raw {
		id, list, ok := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --options value %q (want id=a,b)", entry)
		}
		var opts []string
		for _, item := range strings.Split(list, ",") {
			if item = strings.TrimSpace(item); item != "" {
				opts = append(opts, item)
			}
		}
		out[id] = opts
	}
	return out, nil
}
