// Package mwapi provides the types, interfaces, and the action execution
// protocol for talking to a MediaWiki action API.
//
// # Overview
//
// A single logical bot operation (delete a page, edit a page, list page
// titles) is a composite action: an ordered sequence of wire requests,
// each gated by the wiki's version capabilities, chained through
// intermediate state such as a security token, and terminated by parsing a
// response document that may itself carry an embedded error.
//
// The Sequencer drives that sequence. A caller asks it for the next
// request, performs the HTTP exchange, parses the body into a Document,
// and feeds it back:
//
//	seq, err := mwapi.NewSequencer(action, version, logger)
//	if err != nil { /* action unsupported on this wiki */ }
//	for seq.HasNext() {
//		req, err := seq.Next()
//		// ... perform the exchange, parse the body ...
//		_, err = seq.Process(req, doc)
//	}
//
// Most consumers never touch the Sequencer directly: the mwclient package
// wires configuration, transport and parsing into a Client whose methods
// (Delete, Edit, ReadContent, AllPageTitles, ...) run the loop above.
//
// # Version gating
//
// Every action declares the MediaWiki releases it works on. Constructing a
// sequence for an action the negotiated version does not support fails
// with a ConfigurationError before any request is built.
//
// # Errors
//
// Failures are classified: ConfigurationError (rejected before any
// request), TokenError (token fetch came back empty), DomainError (the
// wiki itself rejected the operation), MalformedResponseError (a success
// response violated the wire contract), and ErrSequenceExhausted (caller
// misuse after the sequence finished). Helpers such as IsPermissionDenied
// and IsBadToken make it easy to branch on common wiki rejections. The
// library never retries a failed step; retry policy is a caller concern.
package mwapi
