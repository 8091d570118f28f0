package commands

import (
	"fmt"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewReadCommand creates the read command
func NewReadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read TITLE",
		Short: "Read a page",
		Long:  "Fetch the current wikitext of a page and print it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if title == "" {
				return constants.ErrTitleRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			article, err := client.ReadContent(cmd.Context(), title)
			if err != nil {
				return fmt.Errorf("failed to read page: %w", err)
			}

			output := viper.GetString("output")
			if output != OutputFormatTable {
				return renderStructured(output, article)
			}

			fmt.Println(article.Text)

			return nil
		},
	}

	return cmd
}
