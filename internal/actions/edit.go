package actions

import (
	"strconv"
	"strings"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// RightEdit is the user right required to write pages.
const RightEdit = "edit"

var editDefinition = mwapi.ActionDefinition{
	ID:        "edit",
	Supported: mwapi.SupportedSince(mwapi.MW1_15),
	Token:     mwapi.TokenEdit,
}

func init() {
	mwapi.RegisterAction(editDefinition.ID, editDefinition.Supported)
}

// Edit creates or replaces a page's text. The sequence is: fetch an edit
// token scoped to the title, then post the new text.
type Edit struct {
	req    *mwapi.EditRequest
	result *mwapi.EditResult
}

// NewEdit validates the preconditions and prepares the action. A nil user
// skips the rights check.
func NewEdit(req *mwapi.EditRequest, user *mwapi.Userinfo) (*Edit, error) {
	if req == nil || req.Title == "" {
		return nil, &mwapi.ConfigurationError{
			Action: editDefinition.ID,
			Reason: "title must not be empty",
		}
	}

	if user != nil && !user.HasRight(RightEdit) {
		return nil, &mwapi.ConfigurationError{
			Action: editDefinition.ID,
			Reason: "user " + user.Name + " lacks the \"" + RightEdit + "\" right",
		}
	}

	return &Edit{req: req}, nil
}

// Definition implements mwapi.Action.
func (a *Edit) Definition() mwapi.ActionDefinition {
	return editDefinition
}

// TokenScope implements mwapi.Action.
func (a *Edit) TokenScope() string {
	return a.req.Title
}

// BuildPrimary implements mwapi.Action.
func (a *Edit) BuildPrimary(tok *mwapi.Token) (*mwapi.ActionRequest, error) {
	params := []mwapi.Param{
		{Key: "action", Value: "edit"},
		{Key: "title", Value: a.req.Title},
		{Key: "text", Value: a.req.Text},
	}

	if a.req.Summary != "" {
		params = append(params, mwapi.Param{Key: "summary", Value: a.req.Summary})
	}

	if a.req.Minor {
		params = append(params, mwapi.Param{Key: "minor", Value: "true"})
	}

	if a.req.Bot {
		params = append(params, mwapi.Param{Key: "bot", Value: "true"})
	}

	// The token goes last: a truncated request body then fails token
	// validation instead of writing partial text.
	params = append(params,
		mwapi.Param{Key: "token", Value: tok.Value()},
		mwapi.Param{Key: "format", Value: constants.FormatXML},
	)

	return mwapi.NewActionRequest(mwapi.MethodPost, constants.APIPath, params...), nil
}

// ProcessPrimary implements mwapi.Action.
func (a *Edit) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	node, ok := doc.Root().Child("edit")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  editDefinition.ID,
			Missing: `"edit" node`,
		}
	}

	result, ok := node.Attr("result")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  editDefinition.ID,
			Missing: `"result" attribute`,
		}
	}

	if result != "Success" {
		return mwapi.StepDone, &mwapi.DomainError{
			Code: strings.ToLower(result),
			Info: "wiki refused the edit of " + a.req.Title,
		}
	}

	title, _ := node.Attr("title")

	var revID int64
	if raw, ok := node.Attr("newrevid"); ok {
		revID, _ = strconv.ParseInt(raw, 10, 64)
	}

	a.result = &mwapi.EditResult{Result: result, Title: title, NewRevID: revID}

	return mwapi.StepDone, nil
}

// Result returns what the wiki reported back, or nil before completion.
func (a *Edit) Result() *mwapi.EditResult {
	return a.result
}
