package actions

import (
	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

var siteinfoDefinition = mwapi.ActionDefinition{
	ID:        "query/siteinfo",
	Supported: mwapi.SupportedSince(mwapi.MW1_14),
	Token:     mwapi.TokenNone,
}

func init() {
	mwapi.RegisterAction(siteinfoDefinition.ID, siteinfoDefinition.Supported)
}

// SiteinfoQuery fetches the wiki's self-description. Its generator string
// is how the client negotiates the target version.
type SiteinfoQuery struct {
	info *mwapi.Siteinfo
}

// NewSiteinfoQuery prepares a siteinfo query.
func NewSiteinfoQuery() *SiteinfoQuery {
	return &SiteinfoQuery{}
}

// Definition implements mwapi.Action.
func (a *SiteinfoQuery) Definition() mwapi.ActionDefinition {
	return siteinfoDefinition
}

// TokenScope implements mwapi.Action.
func (a *SiteinfoQuery) TokenScope() string {
	return ""
}

// BuildPrimary implements mwapi.Action.
func (a *SiteinfoQuery) BuildPrimary(_ *mwapi.Token) (*mwapi.ActionRequest, error) {
	return mwapi.NewActionRequest(mwapi.MethodGet, constants.APIPath,
		mwapi.Param{Key: "action", Value: "query"},
		mwapi.Param{Key: "meta", Value: "siteinfo"},
		mwapi.Param{Key: "siprop", Value: "general"},
		mwapi.Param{Key: "format", Value: constants.FormatXML},
	), nil
}

// ProcessPrimary implements mwapi.Action.
func (a *SiteinfoQuery) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	node, ok := mwapi.FindPath(doc, "query", "general")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  siteinfoDefinition.ID,
			Missing: `"general" node`,
		}
	}

	info := &mwapi.Siteinfo{}
	info.SiteName, _ = node.Attr("sitename")
	info.MainPage, _ = node.Attr("mainpage")
	info.Base, _ = node.Attr("base")
	info.Generator, _ = node.Attr("generator")
	info.Case, _ = node.Attr("case")

	a.info = info

	return mwapi.StepDone, nil
}

// Siteinfo returns the fetched description, or nil before completion.
func (a *SiteinfoQuery) Siteinfo() *mwapi.Siteinfo {
	return a.info
}
