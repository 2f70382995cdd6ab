package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeRemote(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.PathValue("id") != "choco-1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"product not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"choco-1","name":"Dark 70%","price":"4.50","stock":10,"is_active":true}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T) {
	t.Helper()
	remote := newFakeRemote(t)

	t.Setenv("API_BASE_URL", remote.URL)
	t.Setenv("STORAGE_DSN", filepath.Join(t.TempDir(), "storefront.db"))
	t.Setenv("GO_ENV", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("NOTICE_CAPACITY", "")
	t.Setenv("CART_STORAGE_KEY", "")
	t.Setenv("SESSION_STORAGE_KEY", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_CartSurvivesRestart(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "cart", "add", "choco-1", "-q", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Dark 70%")
	assert.Contains(t, out, "total: 9.00")

	//別プロセス相当で読み直す
	out, err = run(t, "cart", "show")
	require.NoError(t, err, out)
	assert.Contains(t, out, "session: anonymous")
	assert.Contains(t, out, "Dark 70%")

	out, err = run(t, "cart", "remove", "--index", "0")
	require.NoError(t, err, out)
	assert.Contains(t, out, "cart is empty")
}

func TestCLI_UnknownProductPrintsNotice(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "cart", "add", "nope")
	require.Error(t, err)
	assert.Contains(t, out, "[error] could not load the product")
}

func TestCLI_MissingAPIBaseURL(t *testing.T) {
	setupEnv(t)
	t.Setenv("API_BASE_URL", "")

	_, err := run(t, "cart", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestCLI_RemoveByProduct(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "cart", "add", "choco-1")
	require.NoError(t, err, out)

	out, err = run(t, "cart", "remove", "--product", "choco-1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "cart is empty")

	_, err = run(t, "cart", "remove")
	assert.Error(t, err)

	_, err = run(t, "cart", "remove", "--index", "0", "--product", "choco-1")
	assert.Error(t, err)
}

func TestListenAddr(t *testing.T) {
	assert.Equal(t, ":8080", listenAddr("8080"))
	assert.Equal(t, ":9000", listenAddr(":9000"))
}
