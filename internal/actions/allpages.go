package actions

import (
	"errors"
	"strconv"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// ErrContinuationRunaway guards against a wiki that keeps returning the
// same continuation marker.
var ErrContinuationRunaway = errors.New("allpages continuation did not terminate")

var allPagesDefinition = mwapi.ActionDefinition{
	ID:        "query/allpages",
	Supported: mwapi.SupportedSince(mwapi.MW1_14),
	Token:     mwapi.TokenNone,
}

func init() {
	mwapi.RegisterAction(allPagesDefinition.ID, allPagesDefinition.Supported)
}

// AllPages lists page titles, following the wiki's continuation marker
// until the listing is exhausted: the first request starts at opts.From,
// each continuation repeats the query with the returned apfrom value.
type AllPages struct {
	opts   mwapi.AllPagesOptions
	titles []string
	cont   string
	rounds int
}

// NewAllPages prepares a title listing. A nil opts lists the main
// namespace from the beginning.
func NewAllPages(opts *mwapi.AllPagesOptions) *AllPages {
	action := &AllPages{}
	if opts != nil {
		action.opts = *opts
	}

	if action.opts.Step <= 0 {
		action.opts.Step = constants.DefaultPageStep
	}

	return action
}

// Definition implements mwapi.Action.
func (a *AllPages) Definition() mwapi.ActionDefinition {
	return allPagesDefinition
}

// TokenScope implements mwapi.Action.
func (a *AllPages) TokenScope() string {
	return ""
}

func (a *AllPages) buildQuery(from string) *mwapi.ActionRequest {
	params := []mwapi.Param{
		{Key: "action", Value: "query"},
		{Key: "list", Value: "allpages"},
	}

	if from != "" {
		params = append(params, mwapi.Param{Key: "apfrom", Value: from})
	}

	if a.opts.Prefix != "" {
		params = append(params, mwapi.Param{Key: "apprefix", Value: a.opts.Prefix})
	}

	if a.opts.RedirectFilter != "" {
		params = append(params, mwapi.Param{Key: "apfilterredir", Value: a.opts.RedirectFilter})
	}

	params = append(params,
		mwapi.Param{Key: "apnamespace", Value: strconv.Itoa(a.opts.Namespace)},
		mwapi.Param{Key: "aplimit", Value: strconv.Itoa(a.opts.Step)},
		mwapi.Param{Key: "format", Value: constants.FormatXML},
	)

	return mwapi.NewActionRequest(mwapi.MethodGet, constants.APIPath, params...)
}

// BuildPrimary implements mwapi.Action.
func (a *AllPages) BuildPrimary(_ *mwapi.Token) (*mwapi.ActionRequest, error) {
	return a.buildQuery(a.opts.From), nil
}

// BuildContinuation implements mwapi.ContinuableAction: the original query
// repeated with the continuation value.
func (a *AllPages) BuildContinuation() (*mwapi.ActionRequest, error) {
	a.rounds++
	if a.rounds > constants.MaxPageSteps {
		return nil, ErrContinuationRunaway
	}

	return a.buildQuery(a.cont), nil
}

// ProcessPrimary implements mwapi.Action: it accumulates one page of
// titles and requests continuation while the marker is present.
func (a *AllPages) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	list, ok := mwapi.FindPath(doc, "query", "allpages")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{
			Action:  allPagesDefinition.ID,
			Missing: `"allpages" node`,
		}
	}

	for _, page := range list.Children("p") {
		if title, ok := page.Attr("title"); ok {
			a.titles = append(a.titles, title)
		}
	}

	if marker, ok := mwapi.FindPath(doc, "query-continue", "allpages"); ok {
		if from, ok := marker.Attr("apfrom"); ok && from != "" {
			a.cont = from

			return mwapi.StepContinue, nil
		}
	}

	return mwapi.StepDone, nil
}

// Titles returns every title accumulated so far.
func (a *AllPages) Titles() []string {
	return a.titles
}
