package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvEndpoint, EnvAdminSecret, EnvTimeout, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
}

func TestLoad_ReadsYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: https://script.example.com/macros/s/abc/exec
admin_secret: hunter2
timeout: 5s
debug: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://script.example.com/macros/s/abc/exec", cfg.Endpoint)
	assert.Equal(t, "hunter2", cfg.AdminSecret)
	assert.Equal(t, 5*time.Second, cfg.GetTimeout())
	assert.True(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://file.example/exec\ntimeout: 5s\n"), 0o600))

	t.Setenv(EnvEndpoint, "http://env.example/exec")
	t.Setenv(EnvAdminSecret, "from-env")
	t.Setenv(EnvTimeout, "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/exec", cfg.Endpoint)
	assert.Equal(t, "from-env", cfg.AdminSecret)
	assert.Equal(t, 2*time.Second, cfg.GetTimeout())
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unterminated\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{Endpoint: "https://x.example/exec", Timeout: "1s"}},
		{name: "missing endpoint", cfg: Config{Timeout: "1s"}, wantErr: true},
		{name: "relative endpoint", cfg: Config{Endpoint: "/exec"}, wantErr: true},
		{name: "bad scheme", cfg: Config{Endpoint: "ftp://x.example"}, wantErr: true},
		{name: "bad timeout", cfg: Config{Endpoint: "https://x.example", Timeout: "soon"}, wantErr: true},
		{name: "zero timeout", cfg: Config{Endpoint: "https://x.example", Timeout: "0s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetTimeout_FallsBackOnGarbage(t *testing.T) {
	cfg := &Config{Timeout: "whenever"}
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
}
