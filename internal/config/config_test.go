package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a config file with only the token and the driver
		path := writeConfig(t, "slack:\n  command-token: abc\nstorage:\n  driver: memory\n")

		// When: loading it
		conf, err := Load(path)

		// Then: values come from the file, the rest from defaults
		require.NoError(t, err)
		assert.Equal(t, "abc", conf.Slack.CommandToken)
		assert.Equal(t, DriverMemory, conf.Storage.Driver)
		assert.Equal(t, "9443", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "slack:\n  command-token: abc\n")
		t.Setenv("TTT_SLACK_COMMAND_TOKEN", "from-env")
		t.Setenv("TTT_REDIS_PORT", "6380")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "from-env", conf.Slack.CommandToken)
		assert.Equal(t, "localhost:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Missing file falls back to the environment", func(t *testing.T) {
		t.Setenv("TTT_SLACK_COMMAND_TOKEN", "from-env")

		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
	})

	t.Run("Token is required", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrMissingToken)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:          "9443",
			Storage:           Storage{Driver: DriverSQLite},
			SQLiteStoragePath: "./data/ttt.db",
			Slack:             Slack{CommandToken: "abc"},
		}
	}

	require.NoError(t, valid().Validate())

	conf := valid()
	conf.Storage.Driver = "mongo"
	assert.ErrorIs(t, conf.Validate(), ErrUnknownDriver)

	conf = valid()
	conf.TLS.CertFile = "cert.pem"
	assert.ErrorIs(t, conf.Validate(), ErrIncompleteTLS)

	conf = valid()
	conf.SQLiteStoragePath = ""
	assert.ErrorIs(t, conf.Validate(), ErrMissingSQLPath)
}
