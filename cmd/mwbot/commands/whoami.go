package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Long:  "Show the bot account's name, groups and rights on the wiki",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createLoggedInClient(cmd.Context())
			if err != nil {
				return err
			}

			userinfo, err := client.Userinfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch user info: %w", err)
			}

			output := viper.GetString("output")
			if output != OutputFormatTable {
				return renderStructured(output, userinfo)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", fmt.Sprintf("%d", userinfo.ID))
			_ = table.Append("Name", userinfo.Name)
			_ = table.Append("Groups", strings.Join(userinfo.Groups, ", "))
			_ = table.Append("Rights", strings.Join(userinfo.Rights, ", "))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
