package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCommand(t *testing.T) {
	var path, cacheControl string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		cacheControl = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(`{"id":25,"name":"pikachu","types":[{"slot":1,"type":{"name":"electric"}}]}`))
	}))
	defer upstream.Close()

	t.Setenv("POKEAPI_BASE_URL", upstream.URL+"/api/v2/")
	t.Setenv("CACHE_BACKEND", "none")
	t.Setenv("LOG_DEVELOPMENT", "false")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fetch", "--id", "25", "--revalidate", "30"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.JSONEq(t, `{"id":25,"name":"pikachu","type":["electric"]}`, out.String())
	assert.Equal(t, "/api/v2/pokemon/25", path)
	assert.Equal(t, "max-age=30", cacheControl)
}

func TestFetchCommand_InvalidConfig(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"fetch"})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
