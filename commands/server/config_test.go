package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLoadConfig(t *testing.T) {
	cases := map[string]struct {
		content string
		want    Config
		wantErr *errors.Error
	}{
		"no file": {
			want: DefaultConfig(),
		},
		"partial file keeps defaults": {
			content: `
bind = "tcp://0.0.0.0:1234"
metrics_addr = ":9090"
`,
			want: Config{
				Bind:        "tcp://0.0.0.0:1234",
				LogLevel:    "info",
				MetricsAddr: ":9090",
				DBPath:      "barter.db",
			},
		},
		"all values": {
			content: `
bind = "unix://barter.sock"
debug = true
log_level = "debug"
metrics_addr = ":9090"
db_path = "/var/lib/barter"
`,
			want: Config{
				Bind:        "unix://barter.sock",
				Debug:       true,
				LogLevel:    "debug",
				MetricsAddr: ":9090",
				DBPath:      "/var/lib/barter",
			},
		},
		"unknown key": {
			content: `bindd = "tcp://0.0.0.0:1234"`,
			wantErr: errors.ErrInput,
		},
		"broken file": {
			content: `bind = `,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home := tempHome(t)
			defer os.RemoveAll(home)
			if tc.content != "" {
				path := filepath.Join(home, ConfigFile)
				require.NoError(t, ioutil.WriteFile(path, []byte(tc.content), 0600))
			}

			conf, err := LoadConfig(home)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, conf)
		})
	}
}

func TestParseFlags(t *testing.T) {
	conf, err := parseFlags(DefaultConfig(), []string{"-bind", "tcp://localhost:1", "-debug", "-log", "error"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:1", conf.Bind)
	assert.True(t, conf.Debug)
	assert.Equal(t, "error", conf.LogLevel)
	assert.Equal(t, "barter.db", conf.DBPath)

	_, err = parseFlags(DefaultConfig(), []string{"-no-such-flag"})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestConfigDBFile(t *testing.T) {
	conf := DefaultConfig()
	assert.Equal(t, filepath.Join("home", "barter.db"), conf.DBFile("home"))
	conf.DBPath = "/abs/db"
	assert.Equal(t, "/abs/db", conf.DBFile("home"))
	conf.DBPath = ""
	assert.Equal(t, "", conf.DBFile("home"))
}

func TestConfigLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "error", "none"} {
		conf := Config{LogLevel: level}
		logger, err := conf.Logger(log.NewNopLogger())
		require.NoError(t, err, level)
		require.NotNil(t, logger)
	}
	_, err := Config{LogLevel: "verbose"}.Logger(log.NewNopLogger())
	assert.True(t, errors.ErrInput.Is(err))
}

func tempHome(t *testing.T) string {
	t.Helper()
	home, err := ioutil.TempDir("", "barterd-")
	require.NoError(t, err)
	return home
}
