package actions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwbot-io/mwapi/internal/actions"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

func TestSiteinfoQuery(t *testing.T) {
	t.Parallel()

	action := actions.NewSiteinfoQuery()

	requests, err := runSequence(t, action, mwapi.MW1_14,
		`<api><query><general sitename="Testwiki" mainpage="Main Page"
			base="https://wiki.example.org/wiki/Main_Page"
			generator="MediaWiki 1.19.2" case="first-letter"/></query></api>`,
	)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	assert.Equal(t, "siteinfo", requests[0].Param("meta"))
	assert.Equal(t, "general", requests[0].Param("siprop"))

	info := action.Siteinfo()
	require.NotNil(t, info)
	assert.Equal(t, "Testwiki", info.SiteName)
	assert.Equal(t, "Main Page", info.MainPage)
	assert.Equal(t, "https://wiki.example.org/wiki/Main_Page", info.Base)
	assert.Equal(t, "first-letter", info.Case)
	assert.Equal(t, mwapi.MW1_19, info.Version())
}

func TestSiteinfoMalformedResponse(t *testing.T) {
	t.Parallel()

	action := actions.NewSiteinfoQuery()

	_, err := runSequence(t, action, mwapi.MW1_14, `<api><query/></api>`)

	malformed := &mwapi.MalformedResponseError{}
	require.ErrorAs(t, err, &malformed)
}
