package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoWikiConfigured   = errors.New("no wiki configured, pass --wiki or set one in the config file")
	ErrCredentialsMissing = errors.New("username and password are required, pass --username or run 'mwbot login'")
	ErrUnknownOutput      = errors.New("unknown output format")
)

// CLI argument errors.
var (
	ErrTitleRequired = errors.New("a page title argument is required")
	ErrTextRequired  = errors.New("page text is required, pass --text or --file")
)
