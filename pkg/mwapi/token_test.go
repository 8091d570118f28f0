package mwapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

func TestTokenAcquisitionBuildRequest(t *testing.T) {
	t.Parallel()

	fetch := mwapi.NewTokenAcquisition(mwapi.TokenDelete, "Main Page")
	req := fetch.BuildRequest()

	assert.Equal(t, mwapi.MethodGet, req.Method())
	assert.Equal(t, "/api.php", req.Path())
	assert.Equal(t, "query", req.Param("action"))
	assert.Equal(t, "info", req.Param("prop"))
	assert.Equal(t, "delete", req.Param("intoken"))
	assert.Equal(t, "Main Page", req.Param("titles"))
	assert.Equal(t, "xml", req.Param("format"))
}

func TestTokenAcquisitionConsumeResponse(t *testing.T) {
	t.Parallel()

	t.Run("token on the page node", func(t *testing.T) {
		t.Parallel()

		fetch := mwapi.NewTokenAcquisition(mwapi.TokenDelete, "Foo")
		doc := parseDoc(t, `<api><query><pages><page title="Foo" deletetoken="abc123+\"/></pages></query></api>`)

		token, err := fetch.ConsumeResponse(doc)
		require.NoError(t, err)
		assert.Equal(t, mwapi.TokenDelete, token.Kind())
		assert.Equal(t, "Foo", token.Scope())
		assert.Equal(t, `abc123+\`, token.Value())
	})

	t.Run("missing token attribute", func(t *testing.T) {
		t.Parallel()

		fetch := mwapi.NewTokenAcquisition(mwapi.TokenDelete, "Foo")
		doc := parseDoc(t, `<api><query><pages><page title="Foo"/></pages></query></api>`)

		_, err := fetch.ConsumeResponse(doc)

		tokenErr := &mwapi.TokenError{}
		require.ErrorAs(t, err, &tokenErr)
		assert.Equal(t, mwapi.TokenDelete, tokenErr.Kind)
		assert.Equal(t, "Foo", tokenErr.Scope)
	})

	t.Run("empty token attribute", func(t *testing.T) {
		t.Parallel()

		fetch := mwapi.NewTokenAcquisition(mwapi.TokenEdit, "Foo")
		doc := parseDoc(t, `<api><query><pages><page title="Foo" edittoken=""/></pages></query></api>`)

		_, err := fetch.ConsumeResponse(doc)

		tokenErr := &mwapi.TokenError{}
		require.ErrorAs(t, err, &tokenErr)
	})

	t.Run("missing page node", func(t *testing.T) {
		t.Parallel()

		fetch := mwapi.NewTokenAcquisition(mwapi.TokenDelete, "Foo")
		doc := parseDoc(t, `<api><query/></api>`)

		_, err := fetch.ConsumeResponse(doc)

		tokenErr := &mwapi.TokenError{}
		require.ErrorAs(t, err, &tokenErr)
	})
}
