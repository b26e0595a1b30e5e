package cmd

import (
	"github.com/ryan-gang/outreach-send/internal/cmdutil"
	"github.com/ryan-gang/outreach-send/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the campaign settings",
	Long: `Loads the campaign settings from the environment and the env file, reports
anything missing and prints the effective values. The password is masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrReport(cmd)
		if cfg == nil {
			return
		}

		util.GreenBold.Println("Configuration is valid")
		util.Cyan.Printf("Spreadsheet: %s (sheet %q)\n", cfg.GetFilePath(), cfg.GetSheetName())
		util.Cyan.Printf("SMTP server: %s:%d (%s, timeout %s)\n", cfg.GetServer(), cfg.GetPort(), cfg.GetSecurity(), cfg.GetTimeout())
		util.Cyan.Printf("Sender: %s <%s>\n", cfg.GetSenderName(), cfg.GetSender())
		util.Cyan.Printf("Password: %s\n", util.Mask(cfg.GetPassword()))
		util.Cyan.Printf("Delay between emails: %s\n", cfg.GetDelay())
		util.Cyan.Printf("Log file: %s\n", cfg.GetLogPath())

		util.CyanBold.Println("\nNext steps:")
		util.Cyan.Println("- Run 'outreach-send contacts' to review who will be emailed")
		util.Cyan.Println("- Run 'outreach-send send' to start the campaign")
	},
}
