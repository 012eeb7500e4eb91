package main

import (
	"os"

	"issue_tracker/internal/app"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Issue tracker backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
	)

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp().Run()
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp().Migrate()
		},
	}
}

func newSeedCommand() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace database contents with demo users and issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp().Seed(seedFile)
		},
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed file path")
	return cmd
}
