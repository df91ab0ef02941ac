// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milchinskiy/linelog/logger"
	"github.com/milchinskiy/linelog/metrics"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// run executes linelog with args and returns the log output and the
// command's own stdout.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	logs := &syncBuffer{}
	out := &bytes.Buffer{}
	cmd := newRootCmd(&options{logWriter: logs})
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(out)
	err := cmd.ExecuteContext(context.Background())
	return logs.String(), out.String(), err
}

func TestLogCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "plain",
			args: []string{"log", "warn", "disk", "almost", "full"},
			want: "WARN  disk almost full\n",
		},
		{
			name: "group flag",
			args: []string{"-g", "db", "log", "error", "down"},
			want: "ERROR [db] down\n",
		},
		{
			name: "below level",
			args: []string{"log", "debug", "hidden"},
			want: "",
		},
		{
			name: "level flag",
			args: []string{"--level", "trace", "log", "debug", "shown"},
			want: "DEBUG shown\n",
		},
		{
			name: "call site",
			args: []string{"--file-line", "log", "--at", "/home/me/bin/backup.sh:42", "info", "start"},
			want: "INFO  <bin/backup.sh:42> start\n",
		},
		{
			name:    "bad level",
			args:    []string{"log", "loud", "x"},
			wantErr: "invalid log level",
		},
		{
			name:    "bad call site",
			args:    []string{"log", "--at", "script.sh:x", "info", "x"},
			wantErr: "invalid source",
		},
		{
			name:    "missing message",
			args:    []string{"log", "info"},
			wantErr: "requires at least 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logs, _, err := run(t, "", tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, logs)
		})
	}
}

func TestPipeCmd(t *testing.T) {
	t.Parallel()

	logs, _, err := run(t, "first\n\nsecond\n", "-g", "build", "pipe", "--as", "warn")
	require.NoError(t, err)
	assert.Equal(t, "WARN  [build] first\nWARN  [build] \nWARN  [build] second\n", logs)
}

func TestPipeCmd_Gated(t *testing.T) {
	t.Parallel()

	logs, _, err := run(t, "noise\n", "pipe", "--as", "debug")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestBannerCmd(t *testing.T) {
	t.Parallel()

	logs, _, err := run(t, "", "--time", "--level", "fatal", "banner", "tool", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "tool v1.2.3 ("+logger.BuildMode()+")\n", logs)
}

func TestTimeCmd(t *testing.T) {
	t.Parallel()

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	logs, out, err := run(t, "", "time", "--label", "job", "--", sh, "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
	assert.Regexp(t, `^INFO  \[job\] took \d+(\.\d+)? (ns|us|ms|s)\n$`, logs)

	logs, _, err = run(t, "", "-g", "nightly", "time", "--", sh, "-c", "exit 3")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, logs, "INFO  [nightly] took ")
	assert.Contains(t, logs, "exited with status 3")
}

func TestTimeCmd_NotFound(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "", "time", "--", "linelog-no-such-command")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run")
}

func TestConfigAndEnvPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "linelog.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
level = "error"
group = "cfg"
filter = 'message != "drop me"'
`), 0o600))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LINELOG_LEVEL=warn\n"), 0o600))

	logs, _, err := run(t, "", "-c", cfgPath, "log", "warn", "below config level")
	require.NoError(t, err)
	assert.Empty(t, logs)

	logs, _, err = run(t, "", "-c", cfgPath, "--env-file", envPath, "log", "warn", "env wins")
	require.NoError(t, err)
	assert.Equal(t, "WARN  [cfg] env wins\n", logs)

	logs, _, err = run(t, "", "-c", cfgPath, "--env-file", envPath, "-l", "info", "-g", "cli", "log", "info", "flags win")
	require.NoError(t, err)
	assert.Equal(t, "INFO  [cli] flags win\n", logs)

	logs, _, err = run(t, "", "-c", cfgPath, "log", "fatal", "drop me")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("level: loud\n"), 0o600))

	_, _, err := run(t, "", "-c", bad, "log", "info", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")

	_, _, err = run(t, "", "--env-file", filepath.Join(dir, "missing.env"), "log", "info", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")

	_, _, err = run(t, "", "--color", "rainbow", "log", "info", "x")
	require.Error(t, err)
}

func TestFileFlag(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	cmd := newRootCmd(&options{})
	cmd.SetArgs([]string{"--file", path, "log", "info", "to file"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	cmd = newRootCmd(&options{})
	cmd.SetArgs([]string{"--file", path, "log", "error", "appended"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "INFO  to file\nERROR appended\n", string(got))
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    source
		wantErr bool
	}{
		{in: "", want: source{file: "-"}},
		{in: "main.sh", want: source{file: "main.sh"}},
		{in: "main.sh:7", want: source{file: "main.sh", line: 7}},
		{in: "/opt/app/bin/run.sh:12", want: source{file: "bin/run.sh", line: 12}},
		{in: "run.sh:-1", wantErr: true},
		{in: "run.sh:", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSource(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestServeHandler(t *testing.T) {
	t.Parallel()

	logs := &syncBuffer{}
	collector := metrics.NewCollector("linelog")
	reg := prometheus.NewRegistry()
	require.NoError(t, collector.Register(reg))
	lg, err := logger.NewBuilder().Writer(logs).Observer(collector).Build()
	require.NoError(t, err)

	srv := httptest.NewServer(newServeHandler(lg, reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/log/level", strings.NewReader(`{"level":"debug"}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, logger.LevelDebug, lg.Level())

	lg.Debug("after level change")

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `linelog_lines_total{level="debug"} 1`)
	assert.Contains(t, logs.String(), "after level change")
}
