package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a wiki",
		Long:  "Authenticate the bot account against the configured wiki endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = viper.GetString("username")
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				password = viper.GetString("password")
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			viper.Set("username", username)
			viper.Set("password", password)

			client, err := createLoggedInClient(cmd.Context())
			if err != nil {
				return err
			}

			userinfo, err := client.Userinfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch user info: %w", err)
			}

			fmt.Printf("Logged in as %s (MediaWiki %s)\n", userinfo.Name, client.NegotiatedVersion())

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "bot account username")
	cmd.Flags().StringVar(&password, "pass", "", "bot account password")

	return cmd
}
