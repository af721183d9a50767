package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zakariaelas/contentgraph/config"
	"github.com/zakariaelas/contentgraph/core/builder"
	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and content model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}

		m, err := model.Load(cfg.Model.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Content model invalid: %v\n", err)
			os.Exit(1)
		}

		// Dry-run build to surface translation errors.
		registry := graph.NewRegistry()
		b := builder.New(builder.Options{
			UseNameForID: cfg.Model.UseNameForID,
			Prefix:       cfg.Model.TypePrefix,
		}, zerolog.Nop())
		stats, err := b.Build(m, registry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Configuration valid\n")
		fmt.Printf("  Model: %s\n", cfg.Model.Path)
		fmt.Printf("  Content types: %d\n", stats.ContentTypes)
		fmt.Printf("  Types emitted: %d\n", stats.TypesDeclared)
		fmt.Printf("  Unions: %d\n", stats.Unions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
