package constants

import "time"

// Wire format.
const (
	// APIPath is the path of the MediaWiki action API endpoint, relative
	// to the wiki's script directory.
	APIPath = "/api.php"

	// FormatXML is the only response format the library requests.
	FormatXML = "xml"

	// DefaultUserAgent identifies the library to the target wiki.
	DefaultUserAgent = "mwapi-go"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits for the transport. The action layer never retries; these
// apply to socket-level and 5xx failures only.
const (
	// DefaultRetryMax is the default maximum number of transport retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Listing and pagination.
const (
	// DefaultPageStep is how many titles one allpages request asks for.
	DefaultPageStep = 50

	// MaxPageSteps caps continuation rounds to guard against a wiki that
	// keeps returning the same continuation marker.
	MaxPageSteps = 5000
)

// Cache sizing.
const (
	// DefaultCacheSize is the default number of articles kept in memory.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default article cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute
)

// Batch execution.
const (
	// DefaultConcurrencyLimit limits concurrent composite actions in a
	// batch.
	DefaultConcurrencyLimit = 3
)

// File and directory permissions for the CLI's config store.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750
)
