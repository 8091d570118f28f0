package commands

import (
	"fmt"
	"os"

	"github.com/mwbot-io/mwapi/pkg/mwapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var (
		from      string
		prefix    string
		namespace int
		step      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List page titles",
		Long:  "List page titles in a namespace, following continuation markers until the wiki reports no more data",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			titles, err := client.AllPageTitles(cmd.Context(), &mwapi.AllPagesOptions{
				From:      from,
				Prefix:    prefix,
				Namespace: namespace,
				Step:      step,
			})
			if err != nil {
				return fmt.Errorf("failed to list pages: %w", err)
			}

			output := viper.GetString("output")
			if output != OutputFormatTable {
				return renderStructured(output, titles)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title")

			for _, title := range titles {
				_ = table.Append(title)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			fmt.Printf("\n%d pages\n", len(titles))

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start listing at this title")
	cmd.Flags().StringVar(&prefix, "prefix", "", "restrict to titles with this prefix")
	cmd.Flags().IntVarP(&namespace, "namespace", "n", 0, "namespace number")
	cmd.Flags().IntVar(&step, "step", 0, "titles per request (0 uses the default)")

	return cmd
}
