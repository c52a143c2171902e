package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{})

	require.NoError(t, err)
	require.Equal(t, "tools", cfg.ToolsDir)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		cfg     Config
		wantErr string
	}{
		"bad log format":     {cfg: Config{LogFormat: "xml"}, wantErr: "invalid log-format"},
		"bad log level":      {cfg: Config{LogLevel: "trace"}, wantErr: "invalid log-level"},
		"suffix without dot": {cfg: Config{Suffix: "spv"}, wantErr: "must start with '.'"},
		"clean and watch":    {cfg: Config{Clean: true, Watch: true}, wantErr: "cannot be combined"},
		"negative port":      {cfg: Config{Watch: true, HealthcheckPort: -1}, wantErr: "must not be negative"},
		"port without watch": {cfg: Config{HealthcheckPort: 8080}, wantErr: "requires watch mode"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	newLogger("debug", "json", buf).Debug("hello", "k", "v")
	require.Contains(t, buf.String(), `"msg":"hello"`)

	buf = &bytes.Buffer{}
	newLogger("warn", "text", buf).Info("hidden")
	require.Empty(t, buf.String())
}
