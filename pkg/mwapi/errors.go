package mwapi

import (
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	// ErrSequenceExhausted is returned when a caller requests another step
	// from a sequence that has already finished.
	ErrSequenceExhausted = errors.New("action sequence exhausted")

	ErrEndpointRequired = errors.New("wiki endpoint is required")
	ErrConfigRequired   = errors.New("config is required")
	ErrCacheMiss        = errors.New("cache miss")
	ErrCacheDisabled    = errors.New("cache disabled")
)

// ConfigurationError reports that an action could not be constructed: the
// negotiated version does not support it, or a precondition such as a
// non-empty title or a required user right was violated. It is raised
// before any request is issued.
type ConfigurationError struct {
	Action string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot build %s action: %s", e.Action, e.Reason)
}

// TokenError reports a missing or empty security token after a token-fetch
// step. It is always fatal for the enclosing action and never retried: an
// absent token means insufficient privilege or a protocol mismatch, not a
// transient condition.
type TokenError struct {
	Kind  TokenKind
	Scope string
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	return fmt.Sprintf("no %s token returned for %q", e.Kind, e.Scope)
}

// DomainError is a structured rejection reported by the wiki itself, parsed
// from the error node of a response document. Hint carries advisory
// remediation text for known codes and never affects control flow.
type DomainError struct {
	Code string
	Info string
	Hint string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Info)
}

// MalformedResponseError reports a success-path response that lacks an
// expected node or attribute. Distinct from DomainError: it means the wire
// contract itself was violated, not that the wiki rejected the operation.
type MalformedResponseError struct {
	Action  string
	Missing string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: missing %s", e.Action, e.Missing)
}

// Well-known API error codes.
const (
	ErrCodePermissionDenied   = "permissiondenied"
	ErrCodeInPermissionDenied = "inpermissiondenied"
	ErrCodeWriteAPIDenied     = "writeapidenied"
	ErrCodeNoAPIWrite         = "noapiwrite"
	ErrCodeReadAPIDenied      = "readapidenied"
	ErrCodeBadToken           = "badtoken"
	ErrCodeMissingTitle       = "missingtitle"
	ErrCodeProtectedPage      = "protectedpage"
	ErrCodeUnknownAction      = "unknown_action"
)

// remediationHints maps known error codes to advisory text. The table is
// configuration data: callers may extend it with RegisterHint.
var remediationHints = map[string]string{
	ErrCodePermissionDenied: "grant the required right to the bot's group in LocalSettings.php, " +
		"e.g. $wgGroupPermissions['bot']['delete'] = true;",
	ErrCodeInPermissionDenied: "grant the required right to the bot's group in LocalSettings.php, " +
		"e.g. $wgGroupPermissions['bot']['delete'] = true;",
	ErrCodeWriteAPIDenied: "add $wgEnableWriteAPI = true; to LocalSettings.php to enable the write API",
	ErrCodeNoAPIWrite:     "add $wgEnableWriteAPI = true; to LocalSettings.php to enable the write API",
	ErrCodeUnknownAction:  "add $wgEnableWriteAPI = true; to LocalSettings.php, or upgrade the wiki",
	ErrCodeBadToken:       "the token was stale or scoped to another page; fetch a fresh one",
}

// RegisterHint attaches remediation text to an API error code, replacing
// any existing hint. Hints are advisory only.
func RegisterHint(code, hint string) {
	remediationHints[code] = hint
}

// HintFor returns the remediation hint registered for code, or "".
func HintFor(code string) string {
	return remediationHints[code]
}

// IsPermissionDenied reports whether err is a wiki rejection for a missing
// right.
func IsPermissionDenied(err error) bool {
	domainErr := &DomainError{}
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrCodePermissionDenied || domainErr.Code == ErrCodeInPermissionDenied
	}

	return false
}

// IsWriteAPIDisabled reports whether err indicates the wiki's write API is
// switched off.
func IsWriteAPIDisabled(err error) bool {
	domainErr := &DomainError{}
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrCodeWriteAPIDenied || domainErr.Code == ErrCodeNoAPIWrite ||
			domainErr.Code == ErrCodeUnknownAction
	}

	return false
}

// IsBadToken reports whether err is a stale-token rejection. Callers that
// want to retry with a fresh token branch on this; the library itself never
// retries.
func IsBadToken(err error) bool {
	domainErr := &DomainError{}
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrCodeBadToken
	}

	return false
}
