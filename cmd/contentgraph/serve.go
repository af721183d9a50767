package main

import (
	"github.com/spf13/cobra"

	"github.com/zakariaelas/contentgraph/bootstrap"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schema over HTTP and rebuild on model changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New(cfgFile)
		if err != nil {
			return err
		}

		if serveWatch {
			if err := app.WatchModel(); err != nil {
				return err
			}
		}

		// Blocks until shutdown
		return app.Run()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "rebuild when the content model file changes")
	rootCmd.AddCommand(serveCmd)
}
