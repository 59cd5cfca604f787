package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-tagstore/cmd"
	"github.com/mattsolo1/grove-tagstore/cmd/config"
	"github.com/mattsolo1/grove-tagstore/pkg/service"
)

var svc *service.Service

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tagstore",
		Short:        "Tag-keyed settings and framework project store",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		logger, err := config.NewLogger(viper.GetViper())
		if err != nil {
			return err
		}
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logger.GetLevel())

		if c.Name() == "version" {
			return nil
		}
		svc, err = config.InitService(logger)
		return err
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewGetCmd(&svc))
	rootCmd.AddCommand(cmd.NewSetCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewShowCmd(&svc))
	rootCmd.AddCommand(cmd.NewEvalCmd(&svc))
	rootCmd.AddCommand(cmd.NewWatchCmd(&svc))
	rootCmd.AddCommand(cmd.NewConvertCmd(&svc))
	rootCmd.AddCommand(cmd.NewDocumentsCmd(&svc))
	rootCmd.AddCommand(cmd.NewProjectCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	return rootCmd
}

// execute runs rootCmd and closes the service even when the command failed;
// cobra skips post-run hooks after an error.
func execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	if svc != nil {
		if cerr := svc.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("failed to close store")
		}
		svc = nil
	}
	return err
}
