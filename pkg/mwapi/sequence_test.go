package mwapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	logs []map[string]interface{}
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

// fakeWrite is a minimal tokened action: one token fetch, one primary
// request, done.
type fakeWrite struct {
	definition mwapi.ActionDefinition
	title      string

	primaryToken *mwapi.Token
	processed    int
	processErr   error
}

func (a *fakeWrite) Definition() mwapi.ActionDefinition { return a.definition }
func (a *fakeWrite) TokenScope() string                 { return a.title }

func (a *fakeWrite) BuildPrimary(tok *mwapi.Token) (*mwapi.ActionRequest, error) {
	a.primaryToken = tok

	params := []mwapi.Param{
		{Key: "action", Value: a.definition.ID},
		{Key: "title", Value: a.title},
	}
	if tok != nil {
		params = append(params, mwapi.Param{Key: "token", Value: tok.Value()})
	}

	return mwapi.NewActionRequest(mwapi.MethodPost, "/api.php", params...), nil
}

func (a *fakeWrite) ProcessPrimary(mwapi.Document) (mwapi.StepOutcome, error) {
	a.processed++

	return mwapi.StepDone, a.processErr
}

// fakeList is a minimal continuable action: it pages until the fixture
// stops carrying a marker.
type fakeList struct {
	definition mwapi.ActionDefinition
	titles     []string
	cont       string
}

func (a *fakeList) Definition() mwapi.ActionDefinition { return a.definition }
func (a *fakeList) TokenScope() string                 { return "" }

func (a *fakeList) BuildPrimary(*mwapi.Token) (*mwapi.ActionRequest, error) {
	return a.buildQuery("")
}

func (a *fakeList) BuildContinuation() (*mwapi.ActionRequest, error) {
	return a.buildQuery(a.cont)
}

func (a *fakeList) buildQuery(from string) (*mwapi.ActionRequest, error) {
	params := []mwapi.Param{{Key: "action", Value: "query"}}
	if from != "" {
		params = append(params, mwapi.Param{Key: "from", Value: from})
	}

	return mwapi.NewActionRequest(mwapi.MethodGet, "/api.php", params...), nil
}

func (a *fakeList) ProcessPrimary(doc mwapi.Document) (mwapi.StepOutcome, error) {
	list, ok := mwapi.FindPath(doc, "query", "allpages")
	if !ok {
		return mwapi.StepDone, &mwapi.MalformedResponseError{Action: a.definition.ID, Missing: "allpages"}
	}

	for _, page := range list.Children("p") {
		title, _ := page.Attr("title")
		a.titles = append(a.titles, title)
	}

	if marker, ok := mwapi.FindPath(doc, "query-continue", "allpages"); ok {
		a.cont, _ = marker.Attr("apfrom")

		return mwapi.StepContinue, nil
	}

	return mwapi.StepDone, nil
}

func init() {
	mwapi.RegisterAction("test/write", mwapi.SupportedSince(mwapi.MW1_15))
	mwapi.RegisterAction("test/list", mwapi.SupportedSince(mwapi.MW1_14))
	mwapi.RegisterAction("test/plain", mwapi.SupportedSince(mwapi.MW1_14))
}

func newFakeWrite(title string) *fakeWrite {
	return &fakeWrite{
		definition: mwapi.ActionDefinition{
			ID:        "test/write",
			Supported: mwapi.SupportedSince(mwapi.MW1_15),
			Token:     mwapi.TokenDelete,
		},
		title: title,
	}
}

func newFakeList() *fakeList {
	return &fakeList{
		definition: mwapi.ActionDefinition{
			ID:        "test/list",
			Supported: mwapi.SupportedSince(mwapi.MW1_14),
			Token:     mwapi.TokenNone,
		},
	}
}

func TestSequencerTokenedAction(t *testing.T) {
	t.Parallel()

	action := newFakeWrite("Foo")
	seq, err := mwapi.NewSequencer(action, mwapi.MW1_16, nil)
	require.NoError(t, err)
	assert.Equal(t, mwapi.StateAwaitingToken, seq.State())

	// The token fetch goes over the wire before anything else.
	require.True(t, seq.HasNext())
	req, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, mwapi.MethodGet, req.Method())
	assert.Equal(t, "delete", req.Param("intoken"))
	assert.Equal(t, "Foo", req.Param("titles"))
	assert.Zero(t, action.processed)

	doc := parseDoc(t, `<api><query><pages><page title="Foo" deletetoken="abc123+\"/></pages></query></api>`)
	outcome, err := seq.Process(req, doc)
	require.NoError(t, err)
	assert.Equal(t, mwapi.StepContinue, outcome)
	assert.Equal(t, mwapi.StateAwaitingPrimary, seq.State())

	// The primary request carries the fetched token value.
	require.True(t, seq.HasNext())
	req, err = seq.Next()
	require.NoError(t, err)
	assert.Equal(t, mwapi.MethodPost, req.Method())
	assert.Equal(t, `abc123+\`, req.Param("token"))

	outcome, err = seq.Process(req, parseDoc(t, `<api><result/></api>`))
	require.NoError(t, err)
	assert.Equal(t, mwapi.StepDone, outcome)
	assert.False(t, seq.HasNext())
	assert.Equal(t, 1, action.processed)
	require.NotNil(t, action.primaryToken)
	assert.Equal(t, mwapi.TokenDelete, action.primaryToken.Kind())
}

func TestSequencerExhaustion(t *testing.T) {
	t.Parallel()

	action := newFakeWrite("Foo")
	seq, err := mwapi.NewSequencer(action, mwapi.MW1_16, nil)
	require.NoError(t, err)

	tokenDoc := parseDoc(t, `<api><query><pages><page deletetoken="tok"/></pages></query></api>`)
	doneDoc := parseDoc(t, `<api><result/></api>`)

	req, err := seq.Next()
	require.NoError(t, err)
	_, err = seq.Process(req, tokenDoc)
	require.NoError(t, err)

	req, err = seq.Next()
	require.NoError(t, err)
	_, err = seq.Process(req, doneDoc)
	require.NoError(t, err)

	// Both Next and Process reject use after the sequence finished.
	_, err = seq.Next()
	assert.ErrorIs(t, err, mwapi.ErrSequenceExhausted)

	_, err = seq.Process(req, doneDoc)
	assert.ErrorIs(t, err, mwapi.ErrSequenceExhausted)
	assert.Equal(t, 1, action.processed)
}

func TestSequencerVersionGate(t *testing.T) {
	t.Parallel()

	action := newFakeWrite("Foo")

	_, err := mwapi.NewSequencer(action, mwapi.MW1_14, nil)

	configErr := &mwapi.ConfigurationError{}
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "test/write", configErr.Action)
	assert.Contains(t, configErr.Reason, "1.14")
}

func TestSequencerDomainErrorStopsSequence(t *testing.T) {
	t.Parallel()

	t.Run("during the token step", func(t *testing.T) {
		t.Parallel()

		logger := &recordingLogger{}
		action := newFakeWrite("Foo")
		seq, err := mwapi.NewSequencer(action, mwapi.MW1_16, logger)
		require.NoError(t, err)

		req, err := seq.Next()
		require.NoError(t, err)

		doc := parseDoc(t, `<api><error code="readapidenied" info="You need read permission"/></api>`)
		_, err = seq.Process(req, doc)

		domainErr := &mwapi.DomainError{}
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "readapidenied", domainErr.Code)
		assert.False(t, seq.HasNext())
		assert.Zero(t, action.processed)

		// The rejection is logged before the sequence stops.
		require.NotEmpty(t, logger.logs)
		assert.Equal(t, "warn", logger.logs[0]["level"])
	})

	t.Run("during the primary step", func(t *testing.T) {
		t.Parallel()

		logger := &recordingLogger{}
		action := newFakeWrite("Foo")
		seq, err := mwapi.NewSequencer(action, mwapi.MW1_16, logger)
		require.NoError(t, err)

		req, err := seq.Next()
		require.NoError(t, err)
		_, err = seq.Process(req, parseDoc(t, `<api><query><pages><page deletetoken="tok"/></pages></query></api>`))
		require.NoError(t, err)

		req, err = seq.Next()
		require.NoError(t, err)

		doc := parseDoc(t, `<api><error code="permissiondenied" info="not allowed"/></api>`)
		_, err = seq.Process(req, doc)

		domainErr := &mwapi.DomainError{}
		require.ErrorAs(t, err, &domainErr)
		assert.NotEmpty(t, domainErr.Hint)
		assert.False(t, seq.HasNext())
		assert.Zero(t, action.processed)

		// Known codes additionally log their remediation hint.
		last := logger.logs[len(logger.logs)-1]
		assert.Equal(t, "error", last["level"])
	})
}

func TestSequencerTokenErrorIsFatal(t *testing.T) {
	t.Parallel()

	action := newFakeWrite("Foo")
	seq, err := mwapi.NewSequencer(action, mwapi.MW1_16, nil)
	require.NoError(t, err)

	req, err := seq.Next()
	require.NoError(t, err)

	doc := parseDoc(t, `<api><query><pages><page title="Foo"/></pages></query></api>`)
	_, err = seq.Process(req, doc)

	tokenErr := &mwapi.TokenError{}
	require.ErrorAs(t, err, &tokenErr)
	assert.False(t, seq.HasNext())
	assert.Zero(t, action.processed)
}

func TestSequencerContinuation(t *testing.T) {
	t.Parallel()

	action := newFakeList()
	seq, err := mwapi.NewSequencer(action, mwapi.MW1_14, nil)
	require.NoError(t, err)
	assert.Equal(t, mwapi.StateAwaitingPrimary, seq.State())

	// First page carries a marker.
	req, err := seq.Next()
	require.NoError(t, err)
	assert.Empty(t, req.Param("from"))

	page1 := parseDoc(t, `<api>
		<query><allpages><p title="A"/><p title="B"/></allpages></query>
		<query-continue><allpages apfrom="C"/></query-continue>
	</api>`)
	outcome, err := seq.Process(req, page1)
	require.NoError(t, err)
	assert.Equal(t, mwapi.StepContinue, outcome)
	assert.Equal(t, mwapi.StateAwaitingContinuation, seq.State())

	// The continuation repeats the query from the marker.
	req, err = seq.Next()
	require.NoError(t, err)
	assert.Equal(t, "C", req.Param("from"))

	page2 := parseDoc(t, `<api><query><allpages><p title="C"/></allpages></query></api>`)
	outcome, err = seq.Process(req, page2)
	require.NoError(t, err)
	assert.Equal(t, mwapi.StepDone, outcome)
	assert.False(t, seq.HasNext())
	assert.Equal(t, []string{"A", "B", "C"}, action.titles)
}

func TestSequencerPrimaryErrorStopsSequence(t *testing.T) {
	t.Parallel()

	action := newFakeWrite("Foo")
	action.definition.Token = mwapi.TokenNone
	action.definition.ID = "test/plain"
	action.processErr = &mwapi.MalformedResponseError{Action: "test/plain", Missing: "result"}

	seq, err := mwapi.NewSequencer(action, mwapi.MW1_16, nil)
	require.NoError(t, err)
	assert.Equal(t, mwapi.StateAwaitingPrimary, seq.State())

	req, err := seq.Next()
	require.NoError(t, err)

	_, err = seq.Process(req, parseDoc(t, `<api/>`))

	malformed := &mwapi.MalformedResponseError{}
	require.ErrorAs(t, err, &malformed)
	assert.False(t, seq.HasNext())
}

func TestSequenceStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "awaiting-token", mwapi.StateAwaitingToken.String())
	assert.Equal(t, "awaiting-primary", mwapi.StateAwaitingPrimary.String())
	assert.Equal(t, "awaiting-continuation", mwapi.StateAwaitingContinuation.String())
	assert.Equal(t, "done", mwapi.StateDone.String())
	assert.Equal(t, "invalid", mwapi.SequenceState(42).String())
}
