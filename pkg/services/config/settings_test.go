package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	settings, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "mysql", settings.DataSource.Driver)
	assert.Equal(t, 30*time.Second, settings.DataSource.QueryTimeout)
	assert.Equal(t, "data/sector_average_yearly_returns.csv", settings.Files.SectorCSV)
	assert.Equal(t, "127.0.0.1:8080", settings.Addr())
	assert.Equal(t, 10*time.Second, settings.Server.ShutdownTimeout)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfgPath := filepath.Join(dir, "stock-atlas.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
datasource:
  driver: postgres
  dsn: postgres://reader@localhost/stocks
  query_timeout: 5s
files:
  sector_csv: s3://stocks/sector.csv
server:
  port: "9000"
`), 0o600))

	t.Setenv("STOCK_ATLAS_SERVER_HOST", "0.0.0.0")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "", "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--port=9100", "--log-level=debug"}))

	settings, err := Load(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "postgres", settings.DataSource.Driver)
	assert.Equal(t, 5*time.Second, settings.DataSource.QueryTimeout)
	assert.Equal(t, "s3://stocks/sector.csv", settings.Files.SectorCSV)
	assert.Equal(t, "0.0.0.0:9100", settings.Addr())
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, zerolog.DebugLevel, settings.Logger().GetLevel())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("STOCK_ATLAS_DATASOURCE_DSN=root:root@tcp(127.0.0.1:3306)/stocks_analysis\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STOCK_ATLAS_DATASOURCE_DSN") })

	settings, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "root:root@tcp(127.0.0.1:3306)/stocks_analysis", settings.DataSource.DSN)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("absent.yaml", nil)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestSettings_ResolveDSN(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit dsn wins", func(t *testing.T) {
		s := &Settings{DataSource: DataSource{Driver: "mysql", DSN: "x", MyCnf: "ignored"}}
		dsn, err := s.ResolveDSN(ctx)
		require.NoError(t, err)
		assert.Equal(t, "x", dsn)
	})

	t.Run("option file profile", func(t *testing.T) {
		s := &Settings{DataSource: DataSource{Driver: "mysql", MyCnf: writeMyCnf(t), Profile: "client"}}
		dsn, err := s.ResolveDSN(ctx)
		require.NoError(t, err)
		assert.Equal(t, "root:root@tcp(127.0.0.1:3306)/stocks_analysis?parseTime=true", dsn)
	})

	t.Run("nothing configured", func(t *testing.T) {
		s := &Settings{DataSource: DataSource{Driver: "mysql"}}
		_, err := s.ResolveDSN(ctx)
		assert.ErrorContains(t, err, "must be set")
	})

	t.Run("option file with other driver", func(t *testing.T) {
		s := &Settings{DataSource: DataSource{Driver: "postgres", MyCnf: "x"}}
		_, err := s.ResolveDSN(ctx)
		assert.ErrorContains(t, err, "only applies to the mysql driver")
	})
}

func TestSettings_LoggerInvalidLevel(t *testing.T) {
	s := &Settings{Log: Log{Level: "loud"}}
	assert.Equal(t, zerolog.InfoLevel, s.Logger().GetLevel())
}
