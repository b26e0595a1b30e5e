package cmd

import (
	"context"
	"os"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/outreach-send/internal/cmdutil"
	"github.com/ryan-gang/outreach-send/internal/contacts"
	"github.com/ryan-gang/outreach-send/internal/logger"
	"github.com/ryan-gang/outreach-send/internal/message"
	"github.com/ryan-gang/outreach-send/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.Flags().BoolP("preview", "p", false, "Also print the email each contact would receive")
}

var (
	helpContacts = `Lists the contacts the campaign would email, in sending order, without
sending anything. Use it to check the spreadsheet layout before a real run.`

	exampleContacts = dedent.Dedent(`
		# List eligible contacts
		outreach-send contacts

		# Show the rendered email for every contact
		outreach-send contacts --preview`,
	)
)

var contactsCmd = &cobra.Command{
	Use:     "contacts",
	Short:   "List eligible contacts without sending",
	Long:    helpContacts,
	Example: exampleContacts,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrReport(cmd)
		if cfg == nil {
			return
		}
		preview, _ := cmd.Flags().GetBool("preview")

		list := contacts.NewExtractor(cfg, logger.NewConsole(os.Stderr)).Extract(context.Background())
		if len(list) == 0 {
			util.Red.Printf("No valid contacts found in %s (sheet %q)\n", cfg.GetFilePath(), cfg.GetSheetName())
			return
		}

		util.CyanBold.Printf("%d contacts will be emailed :\n", len(list))
		for idx, c := range list {
			util.Cyan.Printf("%d. %s <%s>\n", idx+1, c.Name, c.Address)
			if preview {
				msg := message.Compose(c.Name, cfg.GetSenderName())
				util.Magenta.Printf("Subject: %s\n", msg.Subject)
				util.Green.Println(msg.Body)
			}
		}
	},
}
