package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func run(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(strings.NewReader(in), &out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestProfilesCommand(t *testing.T) {
	out, err := run(t, "", "profiles", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "hash")
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "(default)")
}

func TestShowCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("x := 1 // set x\n"), 0o644))

	out, err := run(t, "1\n", "show", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "// set x")
	assert.Contains(t, out, path+":1:8-1:16")
}

func TestShowCommandMissingFile(t *testing.T) {
	_, err := run(t, "", "show", filepath.Join(t.TempDir(), "gone.go"), "--log-level", "error")
	assert.NoError(t, err)
}

func TestShowCommandReadsConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log_level: chatty\n"), 0o644))
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("// one\n"), 0o644))

	_, err := run(t, "1\n", "show", path, "--config", cfgFile)
	assert.Error(t, err)

	_, err = run(t, "1\n", "show", path, "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(cfgFile, []byte("log_level: error\n"), 0o644))
	out, err := run(t, "1\n", "show", path, "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, path+":1:1-1:7")
}

func TestTranslateCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		req := gjson.ParseBytes(body)
		assert.Equal(t, "fr", req.Get("target").String())
		w.Write([]byte(`{"translatedText": "` + strings.ToUpper(req.Get("q").String()) + `"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(
		"provider: libretranslate\nbase_url: "+srv.URL+"\ntarget_language: de\ntimeout: 5s\nmax_attempts: 1\n"), 0o644))

	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1  # hola\n"), 0o644))

	_, err := run(t, "", "translate", path, "--config", cfgFile, "--to", "fr", "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1  # HOLA\n", string(data))
}

func TestTranslateCommandBadTarget(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("provider: libretranslate\n"), 0o644))

	_, err := run(t, "", "translate", filepath.Join(dir, "a.go"), "--config", cfgFile, "--to", "not a language", "--log-level", "error")
	assert.Error(t, err)
}

func TestSetupLoggingRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, setupLogging("chatty"))
	require.NoError(t, setupLogging("error"))
}
