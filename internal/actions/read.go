package actions

import (
	"strconv"
	"time"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

var readDefinition = mwapi.ActionDefinition{
	ID:        "query/revisions",
	Supported: mwapi.SupportedSince(mwapi.MW1_14),
	Token:     mwapi.TokenNone,
}

func init() {
	mwapi.RegisterAction(readDefinition.ID, readDefinition.Supported)
}

// Read fetches the current revision of a page: text, author, timestamp.
type Read struct {
	title   string
	article *mwapi.Article
}

// NewRead prepares a content read for the given title.
func NewRead(title string) (*Read, error) {
	if title == "" {
		return nil, &mwapi.ConfigurationError{
			Action: readDefinition.ID,
			Reason: "title must not be empty",
		}
	}

	return &Read{title: title}, nil
}

// Definition implements mwapi.Action.
func (a *Read) Definition() mwapi.ActionDefinition {
	return readDefinition
}

// TokenScope implements mwapi.Action.
func (a *Read) TokenScope() string {
	return ""
}

// BuildPrimary implements mwapi.Action.
func (a *Read) BuildPrimary(_ *mwapi.Token) (*mwapi.ActionRequest, error) {
	return mwapi.NewActionRequest(mwapi.MethodGet, constants.APIPath,
		mwapi.Param{Key: "action", Value: "query"},
		mwapi.Param{Key: "prop", Value: "revisions"},
		mwapi.Param{Key: "titles", Value: a.title},
		mwapi.Param{Key: "rvprop", Value: "content|timestamp|user|ids"},
		mwapi.Param{Key: "rvlimit", Value: "1"},
		mwapi.Param{Key: "format", Value: constants.FormatXML},
	), nil
}

// ProcessPrimary implements mwapi.Action.
func (a *Read) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	page, ok := mwapi.FindPath(doc, "query", "pages", "page")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  readDefinition.ID,
			Missing: `"page" node`,
		}
	}

	// A nonexistent page is a domain-level answer, not a protocol fault.
	if _, missing := page.Attr("missing"); missing {
		return mwapi.StepDone, &mwapi.DomainError{
			Code: mwapi.ErrCodeMissingTitle,
			Info: "the page " + a.title + " does not exist",
		}
	}

	rev, ok := mwapi.FindPath(doc, "query", "pages", "page", "revisions", "rev")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  readDefinition.ID,
			Missing: `"rev" node`,
		}
	}

	title, _ := page.Attr("title")
	user, _ := rev.Attr("user")

	var timestamp time.Time
	if raw, ok := rev.Attr("timestamp"); ok {
		timestamp, _ = time.Parse(time.RFC3339, raw)
	}

	var revID int64
	if raw, ok := rev.Attr("revid"); ok {
		revID, _ = strconv.ParseInt(raw, 10, 64)
	}

	a.article = &mwapi.Article{
		Title:     title,
		Text:      rev.Text(),
		EditedBy:  user,
		Timestamp: timestamp,
		RevID:     revID,
	}

	return mwapi.StepDone, nil
}

// Article returns the fetched page, or nil before completion.
func (a *Read) Article() *mwapi.Article {
	return a.article
}
