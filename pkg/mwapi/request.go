package mwapi

import (
	"net/url"
	"strings"
)

// Method distinguishes read requests from mutating ones.
type Method string

// Supported request methods.
const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Param is one key-value pair of a wire request. Parameter order is
// preserved as declared by the action.
type Param struct {
	Key   string
	Value string
}

// ActionRequest is a single outbound wire request of a composite action.
// It is immutable once constructed; the sequencer builds a fresh one per
// step.
type ActionRequest struct {
	method Method
	path   string
	params []Param
}

// NewActionRequest builds a request for the given method and URL path.
// Params are kept in the order given.
func NewActionRequest(method Method, path string, params ...Param) *ActionRequest {
	copied := make([]Param, len(params))
	copy(copied, params)

	return &ActionRequest{
		method: method,
		path:   path,
		params: copied,
	}
}

// Method returns the request method.
func (r *ActionRequest) Method() Method {
	return r.method
}

// Path returns the URL path, e.g. "/api.php".
func (r *ActionRequest) Path() string {
	return r.path
}

// Params returns a copy of the ordered parameters.
func (r *ActionRequest) Params() []Param {
	copied := make([]Param, len(r.params))
	copy(copied, r.params)

	return copied
}

// Param returns the value of the first parameter named key, or "".
func (r *ActionRequest) Param(key string) string {
	for _, p := range r.params {
		if p.Key == key {
			return p.Value
		}
	}

	return ""
}

// EncodedParams renders the parameters as percent-encoded key=value pairs
// in declaration order. Every value is escaped: titles, reasons and tokens
// routinely contain spaces, slashes and "+".
func (r *ActionRequest) EncodedParams() string {
	var builder strings.Builder

	for i, p := range r.params {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(p.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(p.Value))
	}

	return builder.String()
}

// URI returns the path with the encoded query attached, as sent for GET
// requests and logged for POST requests.
func (r *ActionRequest) URI() string {
	encoded := r.EncodedParams()
	if encoded == "" {
		return r.path
	}

	return r.path + "?" + encoded
}
