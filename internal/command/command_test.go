// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/prefs/internal/config"
	"github.com/tfctl/prefs/internal/settings"
)

const fixture = `anonymous_user_id: X
api_token: secret-token-1234
has_shown_metrics_notification: true
show:
  output: json
telemetry:
  endpoint: https://metrics.example.com
  sample_rate: 0.25
`

// clearEnv keeps the caller's environment from leaking into flag sources.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.SettingsFileEnvVar, config.AppTokenEnvVar, "PREFS_OUTPUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// writeSettings writes contents to a fresh settings file and returns its path.
// An empty contents leaves the file absent.
func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "settings.yaml")
	if contents != "" {
		require.NoError(t, os.WriteFile(p, []byte(contents), 0o600))
	}
	return p
}

// runApp builds and runs the app against the settings file at path,
// returning everything written to stdout.
func runApp(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	full := append([]string{"prefs", "--settings-file", path}, args...)
	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = &buf
	err = app.Run(context.Background(), full)
	return buf.String(), err
}

func reopen(t *testing.T, path string) *settings.Store {
	t.Helper()
	s, err := settings.Open(path, "")
	require.NoError(t, err)
	return s
}

func TestSettingsFileArg(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "absent", args: []string{"prefs", "show"}, expected: ""},
		{name: "separate value", args: []string{"prefs", "--settings-file", "/a.yaml", "show"}, expected: "/a.yaml"},
		{name: "equals value", args: []string{"prefs", "--settings-file=/b.yaml", "show"}, expected: "/b.yaml"},
		{name: "single dash", args: []string{"prefs", "show", "-settings-file", "/c.yaml"}, expected: "/c.yaml"},
		{name: "missing value", args: []string{"prefs", "--settings-file"}, expected: ""},
		{name: "after terminator", args: []string{"prefs", "set", "k", "--", "--settings-file", "/d.yaml"}, expected: ""},
		{name: "positional lookalike", args: []string{"prefs", "set", "settings-file", "v"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, settingsFileArg(tt.args))
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		raw      string
		asString bool
		expected any
		wantErr  bool
	}{
		{name: "notification true", key: settings.KeyHasShownMetricsNotification, raw: "true", expected: true},
		{name: "notification zero", key: settings.KeyHasShownMetricsNotification, raw: "0", expected: false},
		{name: "notification bad", key: settings.KeyHasShownMetricsNotification, raw: "maybe", wantErr: true},
		{name: "token stays string", key: settings.KeyAPIToken, raw: "123", expected: "123"},
		{name: "extra int", key: "count", raw: "3", expected: 3},
		{name: "extra float", key: "ratio", raw: "0.5", expected: 0.5},
		{name: "extra bool", key: "enabled", raw: "yes", expected: "yes"},
		{name: "extra flow list", key: "tags", raw: "[a, b]", expected: []any{"a", "b"}},
		{name: "extra as string", key: "count", raw: "3", asString: true, expected: "3"},
		{name: "extra empty", key: "note", raw: "", expected: ""},
		{name: "extra invalid yaml", key: "note", raw: "a: b: c", expected: "a: b: c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseValue(tt.key, tt.raw, tt.asString)
			if tt.wantErr {
				assert.ErrorIs(t, err, settings.ErrValueType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestGet(t *testing.T) {
	path := writeSettings(t, fixture)

	tests := []struct {
		name     string
		args     []string
		expected string
		wantErr  error
	}{
		{name: "recognized", args: []string{"get", "anonymous_user_id"}, expected: "X\n"},
		{name: "bool", args: []string{"get", "has_shown_metrics_notification"}, expected: "true\n"},
		{name: "dotted path", args: []string{"get", "show.output"}, expected: "json\n"},
		{name: "dotted number", args: []string{"get", "telemetry.sample_rate"}, expected: "0.25\n"},
		{name: "default", args: []string{"get", "--default", "fallback", "missing"}, expected: "fallback\n"},
		{name: "missing", args: []string{"get", "missing"}, wantErr: ErrKeyNotFound},
		{name: "missing dotted", args: []string{"get", "show.nope"}, wantErr: ErrKeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, path, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

// TestGet_Composite verifies nested values print as JSON.
func TestGet_Composite(t *testing.T) {
	out, err := runApp(t, writeSettings(t, fixture), "get", "telemetry")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://metrics.example.com", got["endpoint"])
}

// TestGet_MaterializesAnonymousID verifies the generated id is persisted so a
// second invocation sees the same value.
func TestGet_MaterializesAnonymousID(t *testing.T) {
	path := writeSettings(t, "")

	first, err := runApp(t, path, "get", "anonymous_user_id")
	require.NoError(t, err)
	assert.FileExists(t, path)

	second, err := runApp(t, path, "get", "anonymous_user_id")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestGet_DoesNotMaterializeOtherKeys verifies reads of other keys leave the
// disk alone.
func TestGet_DoesNotMaterializeOtherKeys(t *testing.T) {
	path := writeSettings(t, "")

	out, err := runApp(t, path, "get", "has_shown_metrics_notification")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
	assert.NoFileExists(t, path)
}

func TestGet_ArgCount(t *testing.T) {
	_, err := runApp(t, writeSettings(t, fixture), "get")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 argument(s), got 0")
}

func TestSet(t *testing.T) {
	path := writeSettings(t, fixture)

	out, err := runApp(t, path, "set", "has_shown_metrics_notification", "false")
	require.NoError(t, err)
	assert.Contains(t, out, `"has_shown_metrics_notification": false`)
	assert.False(t, reopen(t, path).HasShownMetricsNotification())

	_, err = runApp(t, path, "set", "count", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, reopen(t, path).Get("count"))

	_, err = runApp(t, path, "set", "--string", "count", "3")
	require.NoError(t, err)
	assert.Equal(t, "3", reopen(t, path).Get("count"))

	s := reopen(t, path)
	assert.Equal(t, "X", s.AnonymousUserID())
	assert.Equal(t, map[string]any{"output": "json"}, s.Get("show"))
}

// TestSet_NewFile verifies a set against a missing file writes defaults
// alongside the new key.
func TestSet_NewFile(t *testing.T) {
	path := writeSettings(t, "")

	_, err := runApp(t, path, "set", "theme", "dark")
	require.NoError(t, err)

	s := reopen(t, path)
	assert.Equal(t, settings.OriginFile, s.Origin())
	assert.Equal(t, "dark", s.Get("theme"))
	assert.NotEmpty(t, s.AnonymousUserID())
	assert.True(t, s.Has(settings.KeyHasShownMetricsNotification))
}

func TestSet_WrongType(t *testing.T) {
	path := writeSettings(t, fixture)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = runApp(t, path, "set", "has_shown_metrics_notification", "maybe")
	assert.ErrorIs(t, err, settings.ErrValueType)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSet_DryRun(t *testing.T) {
	path := writeSettings(t, fixture)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := runApp(t, path, "set", "--dry-run", "theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, `"theme": "dark"`)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// TestSet_MasksTokenInDiff verifies the change preview never prints the
// token in the clear.
func TestSet_MasksTokenInDiff(t *testing.T) {
	out, err := runApp(t, writeSettings(t, fixture), "set", "--dry-run", "api_token", "another-token-9999")
	require.NoError(t, err)
	assert.NotContains(t, out, "another-token")
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, "9999")
}

func TestUnset(t *testing.T) {
	path := writeSettings(t, fixture)

	_, err := runApp(t, path, "unset", "telemetry")
	require.NoError(t, err)
	assert.False(t, reopen(t, path).Has("telemetry"))

	_, err = runApp(t, path, "unset", "telemetry")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = runApp(t, path, "unset", "--dry-run", "show")
	require.NoError(t, err)
	assert.True(t, reopen(t, path).Has("show"))
}

func TestShow(t *testing.T) {
	path := writeSettings(t, fixture)

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:        "masked json",
			args:        []string{"show", "--output", "json"},
			contains:    []string{`"api_token": "*************1234"`, `"anonymous_user_id": "X"`},
			notContains: []string{"secret-token"},
		},
		{
			name:     "revealed yaml",
			args:     []string{"show", "--output", "yaml", "--reveal"},
			contains: []string{"api_token: secret-token-1234", "anonymous_user_id: X"},
		},
		{
			name:        "text",
			args:        []string{"show", "--output", "text"},
			contains:    []string{"anonymous_user_id", "has_shown_metrics_notification", "true"},
			notContains: []string{"secret-token"},
		},
		{
			name:        "filtered",
			args:        []string{"show", "--output", "json", "--filter", "key^has_"},
			contains:    []string{`"has_shown_metrics_notification": true`},
			notContains: []string{"anonymous_user_id", "api_token"},
		},
		{
			name:     "text titles",
			args:     []string{"show", "--output", "text", "--titles"},
			contains: []string{"KEY", "VALUE", path + " (file)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, path, tt.args...)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, c := range tt.notContains {
				assert.NotContains(t, out, c)
			}
		})
	}
}

// TestShow_OutputFromSettings verifies show.output in the settings file sets
// the default format.
func TestShow_OutputFromSettings(t *testing.T) {
	out, err := runApp(t, writeSettings(t, fixture), "show")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "X", got["anonymous_user_id"])
}

func TestShow_BadOutput(t *testing.T) {
	_, err := runApp(t, writeSettings(t, fixture), "show", "--output", "xml")
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	path := writeSettings(t, "")

	out, err := runApp(t, path, "path")
	require.NoError(t, err)
	assert.Contains(t, out, "path:     "+path)
	assert.Contains(t, out, "origin:   defaults")
	assert.Contains(t, out, "exists:   false")

	_, err = runApp(t, path, "init")
	require.NoError(t, err)

	out, err = runApp(t, path, "path")
	require.NoError(t, err)
	assert.Contains(t, out, "origin:   file")
	assert.Contains(t, out, "exists:   true")
	assert.Contains(t, out, "size:     ")
	assert.Contains(t, out, "modified: ")
}

func TestInit(t *testing.T) {
	path := writeSettings(t, "")

	out, err := runApp(t, path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote defaults: "+path)
	id := reopen(t, path).AnonymousUserID()
	assert.NotEmpty(t, id)

	out, err = runApp(t, path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "settings already initialized")
	assert.Equal(t, id, reopen(t, path).AnonymousUserID())

	_, err = runApp(t, path, "init", "--force")
	require.NoError(t, err)
	assert.NotEqual(t, id, reopen(t, path).AnonymousUserID())
}

// TestInit_ForceDropsExtras verifies --force replaces the whole document.
func TestInit_ForceDropsExtras(t *testing.T) {
	path := writeSettings(t, fixture)

	_, err := runApp(t, path, "init", "--force")
	require.NoError(t, err)

	s := reopen(t, path)
	assert.False(t, s.Has("telemetry"))
	assert.False(t, s.Has(settings.KeyAPIToken))
}

func TestLoginLogout(t *testing.T) {
	path := writeSettings(t, "anonymous_user_id: X\n")

	_, err := runApp(t, path, "login")
	assert.Error(t, err)

	_, err = runApp(t, path, "login", "--token", "tok-abcdef")
	require.NoError(t, err)
	tok, ok := reopen(t, path).APIToken()
	assert.True(t, ok)
	assert.Equal(t, "tok-abcdef", tok)

	_, err = runApp(t, path, "logout")
	require.NoError(t, err)
	_, ok = reopen(t, path).APIToken()
	assert.False(t, ok)

	out, err := runApp(t, path, "logout")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)
}

func TestCompletion(t *testing.T) {
	path := writeSettings(t, "")

	out, err := runApp(t, path, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _prefs prefs")

	out, err = runApp(t, path, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef prefs")

	t.Setenv("SHELL", "/bin/fish")
	_, err = runApp(t, path, "completion")
	assert.Error(t, err)
}

// TestOpenStore_PermissionFallsBackToEphemeral verifies an unreadable
// settings directory yields a usable store that refuses to save.
func TestOpenStore_PermissionFallsBackToEphemeral(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.Chmod(dir, 0))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	s, err := openStore(config.Env{SettingsFile: filepath.Join(dir, "settings.yaml")})
	require.NoError(t, err)
	assert.Equal(t, settings.OriginEphemeral, s.Origin())
	assert.NotEmpty(t, s.AnonymousUserID())
	assert.ErrorIs(t, s.Save(), settings.ErrEphemeral)
}

func TestGetMeta_Missing(t *testing.T) {
	assert.Nil(t, GetMeta(nil).Settings)
}

// TestNonStringNestedKeys verifies a settings file whose nested mapping has
// integer keys stays readable and writable, and keeps its key types on save.
func TestNonStringNestedKeys(t *testing.T) {
	path := writeSettings(t, "anonymous_user_id: X\nports:\n  80: http\n  443: https\n")

	_, err := runApp(t, path, "set", "has_shown_metrics_notification", "true")
	require.NoError(t, err)
	assert.True(t, reopen(t, path).HasShownMetricsNotification())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  80: http\n")

	out, err := runApp(t, path, "show", "--output", "json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"80": "http", "443": "https"}, got["ports"])

	out, err = runApp(t, path, "get", "ports.80")
	require.NoError(t, err)
	assert.Equal(t, "http\n", out)

	out, err = runApp(t, path, "get", "ports")
	require.NoError(t, err)
	assert.Contains(t, out, `"443": "https"`)

	_, err = runApp(t, path, "unset", "ports")
	require.NoError(t, err)
	assert.False(t, reopen(t, path).Has("ports"))
}
