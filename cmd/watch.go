package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-tagstore/pkg/service"
	"github.com/mattsolo1/grove-tagstore/pkg/settings"
)

var watchLog = logrus.WithField("component", "tagstore.cmd.watch")

func NewWatchCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload and print the settings whenever the file changes",
		Long: `Watch the settings file and print a summary each time it is rewritten.
Only the fs backend can be watched. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (%d tags)\n", s.Config.SettingsKey, s.LoadSettings().Len())
			watchLog.WithField("key", s.Config.SettingsKey).Debug("watch started")

			return s.WatchSettings(ctx, func(doc *settings.Document) {
				fmt.Fprintf(out, "%s reloaded: %d tags\n", time.Now().Format("15:04:05"), doc.Len())
			})
		},
	}

	return cmd
}
