package cmd

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"raspview/internal/logfile"
	"raspview/internal/render"
)

var renderFormat string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the log file once to stdout",
	Long: `Read the log file once and write it to stdout as an HTML page, JSON, or
a terminal table. A missing log file prints the "no logs yet" notice.

Examples:
  raspview render > logs.html
  raspview render --file /var/www/logfile.log --format text`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("file", "", "absolute path of the log file")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "output format: html, json, text")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	defer flush()

	renderer, err := render.ForFormat(renderFormat)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.ReadTimeout)
	defer cancel()

	page, err := logfile.NewReader(settings.LogFile).Read(ctx)
	if err != nil {
		return err
	}

	// Write straight to stdout so colours follow the terminal.
	if strings.EqualFold(renderFormat, "text") {
		return renderer.Render(os.Stdout, page)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := renderer.Render(w, page); err != nil {
		return err
	}
	return w.Flush()
}
