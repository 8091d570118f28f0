package mwclient

import (
	"fmt"
	"strings"

	"github.com/mwbot-io/mwapi/internal/client"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// New creates a bot session implementing mwapi.Client. The endpoint is the
// wiki's script URL, e.g. "https://wiki.example.org/w"; a missing scheme
// defaults to https.
func New(config *mwapi.Config) (mwapi.Client, error) {
	if config == nil {
		return nil, mwapi.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, mwapi.ErrEndpointRequired
	}

	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	endpoint = strings.TrimSuffix(endpoint, "/api.php")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	bot, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating bot session: %w", err)
	}

	return bot, nil
}
