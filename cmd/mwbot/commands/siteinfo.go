package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSiteinfoCommand creates the siteinfo command
func NewSiteinfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "siteinfo",
		Short: "Show wiki information",
		Long:  "Show the wiki's name, main page and MediaWiki version",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			siteinfo, err := client.Siteinfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch site info: %w", err)
			}

			output := viper.GetString("output")
			if output != OutputFormatTable {
				return renderStructured(output, siteinfo)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Site Name", siteinfo.SiteName)
			_ = table.Append("Main Page", siteinfo.MainPage)
			_ = table.Append("Base URL", siteinfo.Base)
			_ = table.Append("Generator", siteinfo.Generator)
			_ = table.Append("Version", siteinfo.Version().String())

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
