package actions

import (
	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

var loginDefinition = mwapi.ActionDefinition{
	ID:        "login",
	Supported: mwapi.SupportedSince(mwapi.MW1_14),
	Token:     mwapi.TokenNone,
}

func init() {
	mwapi.RegisterAction(loginDefinition.ID, loginDefinition.Supported)
}

// Login performs the two-step login handshake. The first request is posted
// without a token; the wiki answers NeedToken with a handshake token, and
// the request is repeated with it through the continuation step. The token
// kind is declared TokenNone because the chaining happens inside the
// handshake rather than via an intoken fetch.
type Login struct {
	username string
	password string
	token    string
	loggedIn string
}

// NewLogin prepares a login for the given credentials.
func NewLogin(username, password string) (*Login, error) {
	if username == "" || password == "" {
		return nil, &mwapi.ConfigurationError{
			Action: loginDefinition.ID,
			Reason: "username and password must not be empty",
		}
	}

	return &Login{username: username, password: password}, nil
}

// Definition implements mwapi.Action.
func (a *Login) Definition() mwapi.ActionDefinition {
	return loginDefinition
}

// TokenScope implements mwapi.Action.
func (a *Login) TokenScope() string {
	return ""
}

func (a *Login) buildLogin(token string) *mwapi.ActionRequest {
	params := []mwapi.Param{
		{Key: "action", Value: "login"},
		{Key: "lgname", Value: a.username},
		{Key: "lgpassword", Value: a.password},
	}

	if token != "" {
		params = append(params, mwapi.Param{Key: "lgtoken", Value: token})
	}

	params = append(params, mwapi.Param{Key: "format", Value: constants.FormatXML})

	return mwapi.NewActionRequest(mwapi.MethodPost, constants.APIPath, params...)
}

// BuildPrimary implements mwapi.Action.
func (a *Login) BuildPrimary(_ *mwapi.Token) (*mwapi.ActionRequest, error) {
	return a.buildLogin(""), nil
}

// BuildContinuation implements mwapi.ContinuableAction: the login repeated
// with the handshake token.
func (a *Login) BuildContinuation() (*mwapi.ActionRequest, error) {
	return a.buildLogin(a.token), nil
}

// ProcessPrimary implements mwapi.Action.
func (a *Login) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	node, ok := doc.Root().Child("login")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  loginDefinition.ID,
			Missing: `"login" node`,
		}
	}

	result, ok := node.Attr("result")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  loginDefinition.ID,
			Missing: `"result" attribute`,
		}
	}

	switch result {
	case "NeedToken":
		token, ok := node.Attr("token")
		if !ok || token == "" {
			return mwapi.StepDone, &mwapi.TokenError{Kind: mwapi.TokenLogin, Scope: a.username}
		}

		a.token = token

		return mwapi.StepContinue, nil

	case "Success":
		a.loggedIn, _ = node.Attr("lgusername")

		return mwapi.StepDone, nil

	default:
		// WrongPass, NotExists, Throttled, ... are the wiki's own
		// rejections.
		return mwapi.StepDone, &mwapi.DomainError{
			Code: result,
			Info: "login failed for " + a.username,
		}
	}
}

// Username returns the name the wiki confirmed at login, or "".
func (a *Login) Username() string {
	return a.loggedIn
}
