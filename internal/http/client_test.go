package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	mwhttp "github.com/mwbot-io/mwapi/internal/http"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("GET carries the encoded query", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "/api.php", request.URL.Path)
			assert.Equal(t, "action=query&titles=Main+Page&format=xml", request.URL.RawQuery)
			assert.Equal(t, "text/xml", request.Header.Get("Accept"))

			_, _ = writer.Write([]byte(`<api/>`))
		}))
		defer server.Close()

		client := mwhttp.NewClient(server.URL)
		req := mwapi.NewActionRequest(mwapi.MethodGet, "/api.php",
			mwapi.Param{Key: "action", Value: "query"},
			mwapi.Param{Key: "titles", Value: "Main Page"},
			mwapi.Param{Key: "format", Value: "xml"},
		)

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []byte(`<api/>`), resp.Body)
	})

	t.Run("POST sends a form body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.Equal(t, "action=delete&title=Foo&token=abc%2B%5C", string(body))

			_, _ = writer.Write([]byte(`<api><delete title="Foo"/></api>`))
		}))
		defer server.Close()

		client := mwhttp.NewClient(server.URL)
		req := mwapi.NewActionRequest(mwapi.MethodPost, "/api.php",
			mwapi.Param{Key: "action", Value: "delete"},
			mwapi.Param{Key: "title", Value: "Foo"},
			mwapi.Param{Key: "token", Value: `abc+\`},
		)

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "test-bot/1.0", request.Header.Get("User-Agent"))
			_, _ = writer.Write([]byte(`<api/>`))
		}))
		defer server.Close()

		client := mwhttp.NewClient(server.URL, mwhttp.WithUserAgent("test-bot/1.0"))
		req := mwapi.NewActionRequest(mwapi.MethodGet, "/api.php")

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("retries on 5xx", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				writer.WriteHeader(http.StatusBadGateway)

				return
			}

			_, _ = writer.Write([]byte(`<api/>`))
		}))
		defer server.Close()

		client := mwhttp.NewClient(server.URL,
			mwhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Do(context.Background(), mwapi.NewActionRequest(mwapi.MethodGet, "/api.php"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	})

	t.Run("4xx surfaces an error with the body", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte("not here"))
		}))
		defer server.Close()

		client := mwhttp.NewClient(server.URL,
			mwhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Do(context.Background(), mwapi.NewActionRequest(mwapi.MethodGet, "/api.php"))
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, []byte("not here"), resp.Body)

		// Client errors are not retried.
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("session cookies persist across requests", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if _, err := request.Cookie("session"); err != nil {
				http.SetCookie(writer, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
				_, _ = writer.Write([]byte(`<api><login result="NeedToken" token="t"/></api>`))

				return
			}

			_, _ = writer.Write([]byte(`<api><login result="Success"/></api>`))
		}))
		defer server.Close()

		client := mwhttp.NewClient(server.URL)
		req := mwapi.NewActionRequest(mwapi.MethodPost, "/api.php",
			mwapi.Param{Key: "action", Value: "login"})

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, string(resp.Body), "Success")
	})
}
