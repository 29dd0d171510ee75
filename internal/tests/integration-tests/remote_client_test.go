package integration_tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FringeNet/OpenHands/internal/models"
	"github.com/FringeNet/OpenHands/internal/remote"
)

func TestHTTPClient_FetchSparsePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"LANGUAGE":"fr"}`))
	}))
	defer server.Close()

	client, err := remote.NewHTTPClient(server.URL, "test-token", server.Client())
	assert.NoError(t, err)

	payload, err := client.Fetch(context.Background())
	assert.NoError(t, err)
	if assert.NotNil(t, payload) {
		if assert.NotNil(t, payload.Language) {
			assert.Equal(t, "fr", *payload.Language)
		}
		assert.Nil(t, payload.LLMModel)
		assert.Nil(t, payload.ConfirmationMode)
	}
}

func TestHTTPClient_FetchNothingStored(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusNoContent} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client, err := remote.NewHTTPClient(server.URL, "", server.Client())
		assert.NoError(t, err)

		payload, err := client.Fetch(context.Background())
		assert.NoError(t, err, "status %d", status)
		assert.Nil(t, payload, "status %d", status)
		server.Close()
	}
}

func TestHTTPClient_FetchNullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client, err := remote.NewHTTPClient(server.URL, "", server.Client())
	assert.NoError(t, err)

	payload, err := client.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, payload)
}

func TestHTTPClient_FetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := remote.NewHTTPClient(server.URL, "", server.Client())
	assert.NoError(t, err)

	_, err = client.Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPClient_StoreFullPayload(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := remote.NewHTTPClient(server.URL, "", server.Client())
	assert.NoError(t, err)

	settings := models.DefaultSettings()
	settings.Language = "fr"
	ok, err := client.Store(context.Background(), settings)
	assert.NoError(t, err)
	assert.True(t, ok)

	// The submitted object carries every known field.
	for _, key := range models.KnownKeys() {
		assert.Contains(t, received, key)
	}
	assert.Equal(t, "fr", received[models.KeyLanguage])
}

func TestHTTPClient_StoreRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := remote.NewHTTPClient(server.URL, "", server.Client())
	assert.NoError(t, err)

	ok, err := client.Store(context.Background(), models.DefaultSettings())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHTTPClient_OptionsAndLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/options/models":
			w.Write([]byte(`["gpt-4o","o1-mini"]`))
		case "/api/logout":
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := remote.NewHTTPClient(server.URL, "", server.Client())
	assert.NoError(t, err)

	values, err := client.Options(context.Background(), remote.OptionsModels)
	assert.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "o1-mini"}, values)

	assert.NoError(t, client.Logout(context.Background()))
}
