package actions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwbot-io/mwapi/internal/actions"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

func TestUserinfoQuery(t *testing.T) {
	t.Parallel()

	action := actions.NewUserinfoQuery()

	requests, err := runSequence(t, action, mwapi.MW1_14,
		`<api><query><userinfo id="7" name="WikiBot">
			<groups><g>bot</g><g>sysop</g></groups>
			<rights><r>read</r><r>edit</r><r>delete</r></rights>
		</userinfo></query></api>`,
	)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	assert.Equal(t, "userinfo", requests[0].Param("meta"))
	assert.Equal(t, "groups|rights", requests[0].Param("uiprop"))

	info := action.Userinfo()
	require.NotNil(t, info)
	assert.Equal(t, int64(7), info.ID)
	assert.Equal(t, "WikiBot", info.Name)
	assert.Equal(t, []string{"bot", "sysop"}, info.Groups)
	assert.Equal(t, []string{"read", "edit", "delete"}, info.Rights)
	assert.True(t, info.HasRight("delete"))
	assert.False(t, info.HasRight("suppress"))
}

func TestUserinfoAnonymous(t *testing.T) {
	t.Parallel()

	action := actions.NewUserinfoQuery()

	_, err := runSequence(t, action, mwapi.MW1_14,
		`<api><query><userinfo id="0" name="127.0.0.1" anon=""/></query></api>`,
	)
	require.NoError(t, err)

	info := action.Userinfo()
	require.NotNil(t, info)
	assert.Zero(t, info.ID)
	assert.Empty(t, info.Groups)
	assert.Empty(t, info.Rights)
}

func TestUserinfoMalformedResponse(t *testing.T) {
	t.Parallel()

	action := actions.NewUserinfoQuery()

	_, err := runSequence(t, action, mwapi.MW1_14, `<api><query/></api>`)

	malformed := &mwapi.MalformedResponseError{}
	require.ErrorAs(t, err, &malformed)
}
