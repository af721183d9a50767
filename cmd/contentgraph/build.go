package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zakariaelas/contentgraph/bootstrap"
	"github.com/zakariaelas/contentgraph/config"
	"github.com/zakariaelas/contentgraph/core/builder"
	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
)

var buildModelPath string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Translate the content model and print the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if buildModelPath != "" {
			cfg.Model.Path = buildModelPath
		}

		logger := bootstrap.NewLogger(cfg.Logging)

		m, err := model.Load(cfg.Model.Path)
		if err != nil {
			return err
		}

		registry := graph.NewRegistry()
		b := builder.New(builder.Options{
			UseNameForID: cfg.Model.UseNameForID,
			Prefix:       cfg.Model.TypePrefix,
		}, logger)

		if _, err := b.Build(m, registry); err != nil {
			return err
		}

		fmt.Fprint(os.Stdout, registry.SDL())
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildModelPath, "model", "m", "", "content model path (overrides config)")
	rootCmd.AddCommand(buildCmd)
}
