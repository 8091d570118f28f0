package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwbot-io/mwapi/pkg/mwapi"
	"github.com/mwbot-io/mwapi/pkg/mwxml"
)

// parseDoc parses a response fixture.
func parseDoc(t *testing.T, raw string) mwapi.Document {
	t.Helper()

	doc, err := mwxml.Parse([]byte(raw))
	require.NoError(t, err)

	return doc
}

// runSequence drives an action through its full request sequence, feeding
// it the canned responses in order. It returns every request the sequencer
// built and the error that ended the run, if any.
func runSequence(t *testing.T, action mwapi.Action, version mwapi.Version, responses ...string) ([]*mwapi.ActionRequest, error) {
	t.Helper()

	seq, err := mwapi.NewSequencer(action, version, nil)
	require.NoError(t, err)

	var requests []*mwapi.ActionRequest

	for i := 0; seq.HasNext(); i++ {
		require.Less(t, i, len(responses), "sequence asked for more requests than responses provided")

		req, err := seq.Next()
		if err != nil {
			return requests, err
		}

		requests = append(requests, req)

		if _, err := seq.Process(req, parseDoc(t, responses[i])); err != nil {
			return requests, err
		}
	}

	return requests, nil
}
