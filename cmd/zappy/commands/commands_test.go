package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/zappy/am"
	"github.com/teranos/zappy/errors"
	zappytest "github.com/teranos/zappy/internal/testing"
)

const twoRequests = `{
	"success": true,
	"data": {
		"count": 2,
		"requests": [
			{"ip":"1.2.3.4","user_agent":"curl/8","user_id":"u1","referer":"-","CreatedAt":"2024-01-05T10:00:00Z"},
			{"ip":"5.6.7.8","user_agent":"Mozilla/5.0","user_id":"u2","referer":"https://news.ycombinator.com","CreatedAt":"2024-01-06T11:30:15Z"}
		]
	}
}`

// isolate gives the test an empty HOME and working directory and clears ZAPPY_* vars
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{am.APIKeyEnvVar, "ZAPPY_API_URL", "ZAPPY_API_TIMEOUT_SECONDS", "ZAPPY_DISPLAY_TABLE_WIDTH", "ZAPPY_DISPLAY_TIMEZONE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
	am.Reset()
	t.Cleanup(am.Reset)
	return home
}

// withServer points api.url at server
func withServer(t *testing.T, server *zappytest.APIServer) {
	t.Helper()
	t.Setenv("ZAPPY_API_URL", server.URL)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreate_Success(t *testing.T) {
	isolate(t)
	server := zappytest.NewAPIServer(t, http.StatusOK, `{"created":true}`)
	withServer(t, server)

	out, err := execute(t, "create", "gh", "https://github.com")
	require.NoError(t, err)
	assert.Equal(t, "Successfully created alias gh with url https://github.com\n", out)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/alias/create", requests[0].Path)

	var body map[string]string
	require.NoError(t, json.Unmarshal(requests[0].Body, &body))
	assert.Equal(t, map[string]string{"name": "gh", "url": "https://github.com"}, body)
}

func TestCreate_RejectedIsNotAnError(t *testing.T) {
	isolate(t)
	withServer(t, zappytest.NewAPIServer(t, http.StatusConflict, `{"created":false,"error":"alias already exists"}`))

	out, err := execute(t, "create", "gh", "https://github.com")
	require.NoError(t, err)
	assert.Equal(t, "Failed to create alias gh with url https://github.com because alias already exists\n", out)
}

func TestCreate_TransportFailureIsFatal(t *testing.T) {
	isolate(t)
	withServer(t, zappytest.NewAPIServer(t, http.StatusBadGateway, "bad gateway"))

	out, err := execute(t, "create", "gh", "https://github.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create alias gh")
	assert.NotContains(t, out, "Successfully")
}

func TestCreate_MissingArguments(t *testing.T) {
	for _, args := range [][]string{{"create"}, {"create", "gh"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			isolate(t)
			server := zappytest.NewAPIServer(t, http.StatusOK, `{"created":true}`)
			withServer(t, server)

			out, err := execute(t, args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
			assert.Contains(t, out, "Usage:")
			assert.Equal(t, 0, server.Hits())
		})
	}
}

func TestRequests_Success(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	server := zappytest.NewAPIServer(t, http.StatusOK, twoRequests)
	withServer(t, server)

	out, err := execute(t, "requests", "gh")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "Fetching requests for alias gh", lines[0])
	assert.Equal(t, "Total of 2 requests", lines[1])
	assert.Contains(t, lines[2], "Created At")

	first := strings.Index(out, "1.2.3.4")
	second := strings.Index(out, "5.6.7.8")
	require.Greater(t, first, 0)
	assert.Greater(t, second, first, "rows keep service order")
	assert.Contains(t, out, "January 05, 2024, 10:00:00")
	assert.Contains(t, out, "January 06, 2024, 11:30:15")

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/requests/gh", requests[0].Path)
	assert.Equal(t, "Bearer secret", requests[0].Authorization)
}

func TestRequests_OutputIsPlainText(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	withServer(t, zappytest.NewAPIServer(t, http.StatusOK, twoRequests))

	out, err := execute(t, "requests", "gh")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b", "redirected output carries no ANSI escapes")
	assert.Contains(t, out, "IP")
	assert.Contains(t, out, " | ")
}

func TestRequests_EmptyLog(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	withServer(t, zappytest.NewAPIServer(t, http.StatusOK, `{"success":true,"data":{"count":0,"requests":[]}}`))

	out, err := execute(t, "requests", "gh")
	require.NoError(t, err)
	assert.Contains(t, out, "Total of 0 requests")
	assert.Contains(t, out, "User Agent")
}

func TestRequests_RejectedIsFatal(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "wrong")
	withServer(t, zappytest.NewAPIServer(t, http.StatusUnauthorized, `{"success":false,"error":"invalid api key"}`))

	out, err := execute(t, "requests", "gh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gh")
	assert.Contains(t, err.Error(), "invalid api key")
	assert.NotContains(t, out, "Total of")
	assert.NotContains(t, out, "Created At")
}

func TestRequests_MissingCredential(t *testing.T) {
	isolate(t)
	server := zappytest.NewAPIServer(t, http.StatusOK, twoRequests)
	withServer(t, server)

	out, err := execute(t, "requests", "gh")
	require.Error(t, err)
	assert.True(t, errors.IsMissingCredential(err))
	assert.Contains(t, err.Error(), am.APIKeyEnvVar)
	assert.Empty(t, out, "nothing printed before the credential check")
	assert.Equal(t, 0, server.Hits())
}

func TestRequests_TransportFailureIsReported(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	withServer(t, zappytest.NewAPIServer(t, http.StatusBadGateway, "bad gateway"))

	out, err := execute(t, "requests", "gh")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed to get requests for alias gh because")
	assert.Contains(t, out, "502")
	assert.NotContains(t, out, "Total of")
}

func TestRequests_BadDateIsFatal(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	withServer(t, zappytest.NewAPIServer(t, http.StatusOK, `{"success":true,"data":{"count":1,"requests":[
		{"ip":"1.2.3.4","user_agent":"curl/8","user_id":"u1","referer":"-","CreatedAt":"not a date"}
	]}}`))

	out, err := execute(t, "requests", "gh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse date")
	assert.NotContains(t, out, "Total of")
	assert.NotContains(t, out, "1.2.3.4")
}

func TestRequests_TimezoneForZonelessTimestamps(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	t.Setenv("ZAPPY_DISPLAY_TIMEZONE", "Europe/Berlin")
	withServer(t, zappytest.NewAPIServer(t, http.StatusOK, `{"success":true,"data":{"count":1,"requests":[
		{"ip":"1.2.3.4","user_agent":"curl/8","user_id":"u1","referer":"-","CreatedAt":"2024-01-05 11:00:00"}
	]}}`))

	out, err := execute(t, "requests", "gh")
	require.NoError(t, err)
	assert.Contains(t, out, "January 05, 2024, 10:00:00")
}

func TestRequests_MissingArgument(t *testing.T) {
	isolate(t)
	t.Setenv(am.APIKeyEnvVar, "secret")
	server := zappytest.NewAPIServer(t, http.StatusOK, twoRequests)
	withServer(t, server)

	out, err := execute(t, "requests")
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Equal(t, 0, server.Hits())
}

func TestAPIURLFlagOverridesEnvironment(t *testing.T) {
	isolate(t)
	server := zappytest.NewAPIServer(t, http.StatusOK, `{"created":true}`)
	t.Setenv("ZAPPY_API_URL", "http://127.0.0.1:1")

	_, err := execute(t, "--api-url", server.URL, "create", "gh", "https://github.com")
	require.NoError(t, err)
	assert.Equal(t, 1, server.Hits())
}

func TestVerboseLogging(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")
	withServer(t, zappytest.NewAPIServer(t, http.StatusOK, `{"created":true}`))

	out, err := execute(t, "-vv", "create", "gh", "https://github.com")
	require.NoError(t, err)
	assert.Contains(t, out, "config loaded")
	assert.Contains(t, out, "http call")
	assert.Contains(t, out, "duration_ms")
	assert.Contains(t, out, "alias created")

	out, err = execute(t, "create", "gh", "https://github.com")
	require.NoError(t, err)
	assert.Equal(t, "Successfully created alias gh with url https://github.com\n", out, "quiet by default")
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "zappy "), out)
	assert.Contains(t, out, "Platform:")

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit_hash")
}

func TestAmShow_RedactsKey(t *testing.T) {
	for _, format := range []string{"toml", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			isolate(t)
			t.Setenv(am.APIKeyEnvVar, "secret")

			out, err := execute(t, "am", "show", "--format", format)
			require.NoError(t, err)
			assert.Contains(t, out, "https://zappy.sh")
			assert.Contains(t, out, "********")
			assert.NotContains(t, out, "secret")
		})
	}
}

func TestAmGet(t *testing.T) {
	isolate(t)

	out, err := execute(t, "am", "get", "api.url")
	require.NoError(t, err)
	assert.Equal(t, "https://zappy.sh\n", out)

	out, err = execute(t, "am", "get", "display.timezone")
	require.NoError(t, err)
	assert.Equal(t, "local\n", out)

	_, err = execute(t, "am", "get", "api.nope")
	require.Error(t, err)
	hints := errors.GetAllHints(err)
	require.NotEmpty(t, hints)
	for _, key := range []string{"api.url", "api.key", "api.timeout_seconds", "display.table_width", "display.timezone"} {
		assert.Contains(t, hints[0], key)
	}
}

func TestAmValidate(t *testing.T) {
	isolate(t)

	out, err := execute(t, "am", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	am.Reset()
	t.Setenv("ZAPPY_API_URL", "ftp://zappy.sh")
	_, err = execute(t, "am", "validate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestAmWhere(t *testing.T) {
	home := isolate(t)
	userConfig := filepath.Join(home, ".zappy", am.ConfigFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfig), 0750))
	require.NoError(t, os.WriteFile(userConfig, []byte("[display]\ntable_width = 80\n"), 0600))

	out, err := execute(t, "am", "where")
	require.NoError(t, err)
	assert.Contains(t, out, userConfig+" (loaded)")
	assert.Contains(t, out, "/etc/zappy/am.toml")
}

func TestAmInit(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".zappy", am.ConfigFileName)

	out, err := execute(t, "am", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := am.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, am.Defaults(), *loaded)

	_, err = execute(t, "am", "init")
	require.Error(t, err, "existing file kept without --force")

	_, err = execute(t, "am", "init", "--force")
	require.NoError(t, err)
	assert.FileExists(t, path+".back1")
}
