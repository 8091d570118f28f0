package actions

import (
	"strconv"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

var userinfoDefinition = mwapi.ActionDefinition{
	ID:        "query/userinfo",
	Supported: mwapi.SupportedSince(mwapi.MW1_14),
	Token:     mwapi.TokenNone,
}

func init() {
	mwapi.RegisterAction(userinfoDefinition.ID, userinfoDefinition.Supported)
}

// UserinfoQuery fetches the logged-in user's name, groups and rights. The
// rights list feeds the precondition checks of the mutating actions.
type UserinfoQuery struct {
	info *mwapi.Userinfo
}

// NewUserinfoQuery prepares a userinfo query.
func NewUserinfoQuery() *UserinfoQuery {
	return &UserinfoQuery{}
}

// Definition implements mwapi.Action.
func (a *UserinfoQuery) Definition() mwapi.ActionDefinition {
	return userinfoDefinition
}

// TokenScope implements mwapi.Action.
func (a *UserinfoQuery) TokenScope() string {
	return ""
}

// BuildPrimary implements mwapi.Action.
func (a *UserinfoQuery) BuildPrimary(_ *mwapi.Token) (*mwapi.ActionRequest, error) {
	return mwapi.NewActionRequest(mwapi.MethodGet, constants.APIPath,
		mwapi.Param{Key: "action", Value: "query"},
		mwapi.Param{Key: "meta", Value: "userinfo"},
		mwapi.Param{Key: "uiprop", Value: "groups|rights"},
		mwapi.Param{Key: "format", Value: constants.FormatXML},
	), nil
}

// ProcessPrimary implements mwapi.Action.
func (a *UserinfoQuery) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	node, ok := mwapi.FindPath(doc, "query", "userinfo")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  userinfoDefinition.ID,
			Missing: `"userinfo" node`,
		}
	}

	info := &mwapi.Userinfo{}
	info.Name, _ = node.Attr("name")

	if raw, ok := node.Attr("id"); ok {
		info.ID, _ = strconv.ParseInt(raw, 10, 64)
	}

	if groups, ok := node.Child("groups"); ok {
		for _, g := range groups.Children("g") {
			info.Groups = append(info.Groups, g.Text())
		}
	}

	if rights, ok := node.Child("rights"); ok {
		for _, r := range rights.Children("r") {
			info.Rights = append(info.Rights, r.Text())
		}
	}

	a.info = info

	return mwapi.StepDone, nil
}

// Userinfo returns the fetched user description, or nil before completion.
func (a *UserinfoQuery) Userinfo() *mwapi.Userinfo {
	return a.info
}
