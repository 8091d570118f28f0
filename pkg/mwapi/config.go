package mwapi

import (
	"context"
	"time"
)

// Logger is the logging interface components accept. A nil Logger disables
// logging; there is no process-wide default.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

func ensureLogger(logger Logger) Logger {
	if logger == nil {
		return noopLogger{}
	}

	return logger
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

// Config carries everything a bot session needs. It is consumed once at
// client construction; there are no process-wide singletons.
type Config struct {
	// Endpoint is the wiki's script URL without the api.php suffix,
	// e.g. "https://wiki.example.org/w".
	Endpoint string

	// Username and Password authenticate the bot via action=login. Leave
	// both empty for anonymous read access.
	Username string
	Password string

	// Version pins the target MediaWiki release. Zero means negotiate via
	// siteinfo on first use.
	Version Version

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger receives diagnostic output. Nil disables logging.
	Logger Logger

	// Debug additionally logs every request and response at debug level.
	Debug bool

	// Transport retry knobs, applied to socket-level and 5xx failures
	// only. The action layer never retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	HTTPTimeout  time.Duration

	// Cache configures the article cache. Nil disables caching.
	Cache *CacheConfig
}

// Client is the high-level bot surface. A concrete implementation is
// provided by the mwclient package.
type Client interface {
	ActionPerformer

	// Login authenticates the session with the credentials from the
	// config.
	Login(ctx context.Context) error

	// Delete removes a page, fetching a delete token first. reason may be
	// empty.
	Delete(ctx context.Context, title, reason string) (*DeleteResult, error)

	// Edit creates or replaces a page's text, fetching an edit token
	// first.
	Edit(ctx context.Context, req *EditRequest) (*EditResult, error)

	// ReadContent fetches a page's current text, consulting the article
	// cache when one is configured.
	ReadContent(ctx context.Context, title string) (*Article, error)

	// AllPageTitles lists page titles, following continuation markers
	// until the wiki reports no more data.
	AllPageTitles(ctx context.Context, opts *AllPagesOptions) ([]string, error)

	// Userinfo returns the logged-in user's name, groups and rights.
	Userinfo(ctx context.Context) (*Userinfo, error)

	// Siteinfo returns the wiki's self-description.
	Siteinfo(ctx context.Context) (*Siteinfo, error)

	// NegotiatedVersion returns the pinned or discovered target version,
	// or VersionUnknown before negotiation.
	NegotiatedVersion() Version
}

// ActionPerformer runs one composite action to completion: it drives the
// action's Sequencer, performs each HTTP exchange, and feeds the parsed
// response back until the sequence is done or a classified error stops it.
type ActionPerformer interface {
	PerformAction(ctx context.Context, action Action) error
}
