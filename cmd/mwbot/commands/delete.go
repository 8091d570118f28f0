package commands

import (
	"fmt"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "delete TITLE",
		Short: "Delete a page",
		Long:  "Delete a page, fetching a delete token first. Requires the delete right.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if title == "" {
				return constants.ErrTitleRequired
			}

			client, err := createLoggedInClient(cmd.Context())
			if err != nil {
				return err
			}

			result, err := client.Delete(cmd.Context(), title, reason)
			if err != nil {
				return fmt.Errorf("failed to delete page: %w", err)
			}

			output := viper.GetString("output")
			if output != OutputFormatTable {
				return renderStructured(output, result)
			}

			fmt.Printf("Deleted %s\n", result.Title)

			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "deletion reason for the log")

	return cmd
}
