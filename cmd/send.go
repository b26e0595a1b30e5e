package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/outreach-send/internal/campaign"
	"github.com/ryan-gang/outreach-send/internal/cmdutil"
	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/logger"
	"github.com/ryan-gang/outreach-send/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sendCmd)
}

var (
	helpLong = `Runs the campaign: validates the configuration, extracts the eligible
contacts from the spreadsheet and sends one email per contact, waiting
DELAY_BETWEEN_EMAILS seconds after each send. Failed sends are logged and
counted, the campaign carries on with the next contact.
Press Ctrl+C to stop between two sends.`

	helpExample = dedent.Dedent(`
		# Run with settings from ./.env
		outreach-send send

		# Run with a different settings file
		outreach-send send --env-file campaign.env

		# Override a single setting for one run
		DELAY_BETWEEN_EMAILS=10 outreach-send send`,
	)
)

var sendCmd = &cobra.Command{
	Use:     "send",
	Short:   "Send the outreach email to every eligible contact",
	Long:    helpLong,
	Example: helpExample,
	Run: func(cmd *cobra.Command, args []string) {
		envFile := cmdutil.EnvFile(cmd)
		config.LoadEnvFiles(envFile)

		log, err := logger.NewLogger(config.LogPath())
		if err != nil {
			util.LogError(util.FileError, "opening log file", err)
			return
		}
		defer log.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := campaign.New(log).Run(ctx, func() (config.ConfigProvider, error) {
			return config.Load(envFile)
		})
		if err != nil {
			return
		}

		if result.Failed == 0 {
			util.GreenBold.Printf("Sent %d emails\n", result.Succeeded)
		} else {
			util.Magenta.Printf("Sent %d emails, %d failed (see %s)\n", result.Succeeded, result.Failed, config.LogPath())
		}
	},
}
