package actions

import (
	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// RightDelete is the user right required to delete pages.
const RightDelete = "delete"

var deleteDefinition = mwapi.ActionDefinition{
	ID:        "delete",
	Supported: mwapi.SupportedSince(mwapi.MW1_15),
	Token:     mwapi.TokenDelete,
}

func init() {
	mwapi.RegisterAction(deleteDefinition.ID, deleteDefinition.Supported)
}

// Delete removes a page. The sequence is: fetch a delete token scoped to
// the title, then post the deletion.
type Delete struct {
	title  string
	reason string
	result *mwapi.DeleteResult
}

// NewDelete validates the preconditions and prepares the action. A nil
// user skips the rights check (the caller has not fetched userinfo).
func NewDelete(title, reason string, user *mwapi.Userinfo) (*Delete, error) {
	if title == "" {
		return nil, &mwapi.ConfigurationError{
			Action: deleteDefinition.ID,
			Reason: "title must not be empty",
		}
	}

	if user != nil && !user.HasRight(RightDelete) {
		return nil, &mwapi.ConfigurationError{
			Action: deleteDefinition.ID,
			Reason: "user " + user.Name + " lacks the \"" + RightDelete + "\" right; " +
				"add $wgGroupPermissions['bot']['delete'] = true; to LocalSettings.php",
		}
	}

	return &Delete{title: title, reason: reason}, nil
}

// Definition implements mwapi.Action.
func (a *Delete) Definition() mwapi.ActionDefinition {
	return deleteDefinition
}

// TokenScope implements mwapi.Action.
func (a *Delete) TokenScope() string {
	return a.title
}

// BuildPrimary implements mwapi.Action.
func (a *Delete) BuildPrimary(tok *mwapi.Token) (*mwapi.ActionRequest, error) {
	params := []mwapi.Param{
		{Key: "action", Value: "delete"},
		{Key: "title", Value: a.title},
		{Key: "token", Value: tok.Value()},
		{Key: "format", Value: constants.FormatXML},
	}

	if a.reason != "" {
		params = append(params, mwapi.Param{Key: "reason", Value: a.reason})
	}

	return mwapi.NewActionRequest(mwapi.MethodPost, constants.APIPath, params...), nil
}

// ProcessPrimary implements mwapi.Action.
func (a *Delete) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	node, ok := doc.Root().Child("delete")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  deleteDefinition.ID,
			Missing: `"delete" node`,
		}
	}

	title, _ := node.Attr("title")
	reason, _ := node.Attr("reason")
	a.result = &mwapi.DeleteResult{Title: title, Reason: reason}

	return mwapi.StepDone, nil
}

// Result returns what the wiki reported back, or nil before completion.
func (a *Delete) Result() *mwapi.DeleteResult {
	return a.result
}
