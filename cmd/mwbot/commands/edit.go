package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	var (
		text    string
		file    string
		summary string
		minor   bool
		bot     bool
	)

	cmd := &cobra.Command{
		Use:   "edit TITLE",
		Short: "Create or replace a page",
		Long:  "Replace a page's wikitext with the given text or the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if title == "" {
				return constants.ErrTitleRequired
			}

			switch {
			case file == "-":
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}

				text = string(data)
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}

				text = string(data)
			}

			if text == "" {
				return constants.ErrTextRequired
			}

			client, err := createLoggedInClient(cmd.Context())
			if err != nil {
				return err
			}

			result, err := client.Edit(cmd.Context(), &mwapi.EditRequest{
				Title:   title,
				Text:    text,
				Summary: summary,
				Minor:   minor,
				Bot:     bot,
			})
			if err != nil {
				return fmt.Errorf("failed to edit page: %w", err)
			}

			output := viper.GetString("output")
			if output != OutputFormatTable {
				return renderStructured(output, result)
			}

			fmt.Printf("Edited %s (revision %d)\n", result.Title, result.NewRevID)

			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "new page text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read page text from file ('-' for stdin)")
	cmd.Flags().StringVarP(&summary, "summary", "m", "", "edit summary")
	cmd.Flags().BoolVar(&minor, "minor", false, "mark the edit as minor")
	cmd.Flags().BoolVar(&bot, "bot", true, "mark the edit with the bot flag")

	return cmd
}
