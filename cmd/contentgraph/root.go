package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contentgraph",
	Short: "Translate a headless-CMS content model into a graph type schema",
	Long: `Contentgraph translates a content-model export into a strongly-typed
graph schema: object types, interfaces, unions, and the link resolution
metadata a data layer needs to follow references.

Quick start:
  contentgraph build     # Translate the model and print the schema
  contentgraph serve     # Serve the schema and rebuild on model changes

Management:
  contentgraph validate  # Validate configuration and content model`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "contentgraph.yaml", "config file path")
}
