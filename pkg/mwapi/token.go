package mwapi

import (
	"github.com/mwbot-io/mwapi/internal/constants"
)

// TokenKind names the kind of one-time security token an action requires.
type TokenKind string

// Token kinds the action API hands out.
const (
	// TokenNone marks actions that need no token.
	TokenNone TokenKind = ""

	TokenDelete  TokenKind = "delete"
	TokenEdit    TokenKind = "edit"
	TokenMove    TokenKind = "move"
	TokenProtect TokenKind = "protect"

	// TokenLogin is chained inside the login handshake rather than
	// fetched via intoken.
	TokenLogin TokenKind = "login"
)

// Token is a short-lived credential scoped to an action kind and a page.
// A token is owned exclusively by the composite action that requested it
// and consumed exactly once.
type Token struct {
	kind  TokenKind
	scope string
	value string
}

// Kind returns the action kind the token was issued for.
func (t *Token) Kind() TokenKind {
	return t.kind
}

// Scope returns the page title the token is scoped to.
func (t *Token) Scope() string {
	return t.scope
}

// Value returns the opaque token string. A token is never constructed with
// an empty value, so the result is always usable in a dependent request.
func (t *Token) Value() string {
	return t.value
}

// TokenAcquisition is the sub-operation that fetches a token before a
// mutating request. It is itself a single-request action with its own
// response-processing step; the sequencer runs it first and feeds its
// result into the primary request.
type TokenAcquisition struct {
	kind  TokenKind
	scope string
}

// NewTokenAcquisition prepares a token fetch for the given kind, scoped to
// the named page.
func NewTokenAcquisition(kind TokenKind, scope string) *TokenAcquisition {
	return &TokenAcquisition{kind: kind, scope: scope}
}

// BuildRequest returns the read-only token fetch request.
func (a *TokenAcquisition) BuildRequest() *ActionRequest {
	return NewActionRequest(MethodGet, constants.APIPath,
		Param{"action", "query"},
		Param{"prop", "info"},
		Param{"intoken", string(a.kind)},
		Param{"titles", a.scope},
		Param{"format", constants.FormatXML},
	)
}

// ConsumeResponse extracts the token from the fetch response. The token
// lives on the page node as a "<kind>token" attribute. A missing or empty
// value yields a TokenError, which is fatal for the enclosing action:
// retrying cannot help when the wiki withholds a token.
func (a *TokenAcquisition) ConsumeResponse(doc Document) (*Token, error) {
	page, ok := FindPath(doc, "query", "pages", "page")
	if !ok {
		return nil, &TokenError{Kind: a.kind, Scope: a.scope}
	}

	value, ok := page.Attr(string(a.kind) + "token")
	if !ok || value == "" {
		return nil, &TokenError{Kind: a.kind, Scope: a.scope}
	}

	return &Token{kind: a.kind, scope: a.scope, value: value}, nil
}
