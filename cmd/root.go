package cmd

import (
	"fmt"
	"os"

	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("env-file", "e", config.DefaultEnvFile, "Path to a dotenv file with campaign settings")
}

var rootCmd = &cobra.Command{
	Use:   "outreach-send",
	Short: "Send personalized outreach emails to contacts listed in a spreadsheet",
	Long: `outreach-send reads organizations and email addresses from an Excel sheet,
writes a personalized email for each one and delivers it through your SMTP
account, pausing between sends so the campaign does not look like spam.

Settings are read from the environment or a .env file:
  EXCEL_FILE_PATH, SENDER_EMAIL, SENDER_PASSWORD (required)
  SHEET_NAME, SMTP_SERVER, SMTP_PORT, SMTP_SECURITY, SMTP_TIMEOUT,
  SENDER_NAME, DELAY_BETWEEN_EMAILS, LOG_FILE (optional)

Only rows whose third column is "email" and whose first column is filled in
are contacted. The first row of the sheet is treated as a header.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help if no command is provided
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
