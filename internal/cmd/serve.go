package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"raspview/internal/config"
	"raspview/internal/logfile"
	"raspview/internal/logs"
	"raspview/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the log viewer over HTTP",
	Long: `Serve the log table over HTTP. The log file is read on every request,
so new events show up on reload. Changes to the config file are picked up
without a restart.

Examples:
  raspview serve
  raspview serve --addr 127.0.0.1:8080 --file /var/www/logfile.log`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, host:port")
	serveCmd.Flags().String("file", "", "absolute path of the log file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	reader := logfile.NewReader(settings.LogFile)
	srv := server.New(reader, settings)

	config.Watch(reloader(reader, srv, settings))

	return srv.Run(ctx)
}

// reloader applies an edited config to the running server. The listen
// address is bound at startup and only changes on restart.
func reloader(reader *logfile.Reader, srv *server.Server, started *config.Settings) func(*config.Settings) {
	return func(s *config.Settings) {
		if err := logs.SetLevel(s.LogLevel); err != nil {
			logrus.Warnf("[serve] keeping log level: %v", err)
		}
		if s.ListenAddr != started.ListenAddr {
			logrus.Warnf("[serve] listen_addr changed to %s, restart to apply", s.ListenAddr)
		}
		if config.LogDirMissing(s) {
			logrus.Warnf("[serve] directory of %s does not exist yet", s.LogFile)
		}
		reader.SetPath(s.LogFile)
		srv.SetSettings(s)
	}
}
