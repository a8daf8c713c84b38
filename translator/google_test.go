package translator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoogleEngine(t *testing.T, handler http.HandlerFunc) Engine {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	engine, err := NewEngine(EngineGoogle, "api_test_key", EngineApiUrl(server.URL+"/language/translate/"))
	require.NoError(t, err)
	return engine
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGoogleEngine_QuickTranslate(t *testing.T) {
	engine := newTestGoogleEngine(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v2"), r.URL.Path)
		assert.Equal(t, "api_test_key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hola"}]}}`))
	})

	got, err := engine.QuickTranslate(testContext(t), "Hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", got)
}

func TestGoogleEngine_QuickTranslate_Forbidden(t *testing.T) {
	engine := newTestGoogleEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	})

	got, err := engine.QuickTranslate(testContext(t), "Hello", "en", "es")
	require.Error(t, err)
	assert.Empty(t, got)
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusForbidden, authErr.Status)
	assert.Equal(t, "denied", authErr.Message)
}

func TestGoogleEngine_QuickTranslate_ServerError(t *testing.T) {
	engine := newTestGoogleEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend failure"}}`))
	})

	_, err := engine.QuickTranslate(testContext(t), "Hello", "en", "es")
	require.Error(t, err)
	assert.ErrorContains(t, err, "can not translate text")
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}
