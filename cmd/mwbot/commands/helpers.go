package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
	"github.com/mwbot-io/mwapi/pkg/mwclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// createClient builds a bot client from the resolved viper configuration.
func createClient() (mwapi.Client, error) {
	endpoint := viper.GetString("wiki")
	if endpoint == "" {
		return nil, constants.ErrNoWikiConfigured
	}

	config := &mwapi.Config{
		Endpoint: endpoint,
		Username: viper.GetString("username"),
		Password: viper.GetString("password"),
	}

	if viper.GetBool("verbose") {
		config.Logger = stderrLogger{}
		config.Debug = true
	}

	client, err := mwclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// createLoggedInClient builds a client and authenticates it with the
// configured credentials.
func createLoggedInClient(ctx context.Context) (mwapi.Client, error) {
	if viper.GetString("username") == "" || viper.GetString("password") == "" {
		return nil, constants.ErrCredentialsMissing
	}

	client, err := createClient()
	if err != nil {
		return nil, err
	}

	if err := client.Login(ctx); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	return client, nil
}

// renderStructured writes v to stdout in the requested non-table format.
func renderStructured(output string, v interface{}) error {
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(v)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutput, output)
	}
}

// stderrLogger writes diagnostic output to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}
