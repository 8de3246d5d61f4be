// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqBackendAdvise(t *testing.T) {
	var gotAuth string
	var gotBody groqRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Pick Ludwigshafen."}}]}`))
	}))
	defer server.Close()

	origBase := groqAPIBase
	groqAPIBase = server.URL
	defer func() { groqAPIBase = origBase }()

	backend := &GroqBackend{APIKey: "gsk-test", Client: server.Client()}
	narrative, err := backend.Advise(context.Background(), rankedRequest())
	require.NoError(t, err)

	assert.Equal(t, "Pick Ludwigshafen.", narrative)
	assert.Equal(t, "Bearer gsk-test", gotAuth)
	assert.Equal(t, DefaultModel, gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Contains(t, gotBody.Messages[0].Content, "Ludwigshafen Chemical Park")
	assert.Contains(t, gotBody.Messages[0].Content, "target capacity 100 tons")
}

func TestGroqBackendCustomModel(t *testing.T) {
	var gotBody groqRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	origBase := groqAPIBase
	groqAPIBase = server.URL
	defer func() { groqAPIBase = origBase }()

	backend := &GroqBackend{APIKey: "gsk-test", Model: "llama-3.3-70b-versatile", Client: server.Client()}
	_, err := backend.Advise(context.Background(), rankedRequest())
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", gotBody.Model)
}

func TestGroqBackendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	origBase := groqAPIBase
	groqAPIBase = server.URL
	defer func() { groqAPIBase = origBase }()

	backend := &GroqBackend{APIKey: "bad", Client: server.Client()}
	_, err := backend.Advise(context.Background(), rankedRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestGroqBackendEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	origBase := groqAPIBase
	groqAPIBase = server.URL
	defer func() { groqAPIBase = origBase }()

	backend := &GroqBackend{APIKey: "gsk-test", Client: server.Client()}
	_, err := backend.Advise(context.Background(), rankedRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
}

func TestRenderPromptRanksAllSites(t *testing.T) {
	prompt, err := renderPrompt(rankedRequest())
	require.NoError(t, err)
	assert.Contains(t, prompt, "1. Ludwigshafen Chemical Park (DE)")
	assert.Contains(t, prompt, "2. Rotterdam Botlek (NL)")
	assert.Contains(t, prompt, "CO2-to-CO pilot")
}
