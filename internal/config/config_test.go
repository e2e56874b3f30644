package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "db"
dbname = "care"
user = "care"
password = "from-file"

[caregiver_service]
url = "http://caregivers:8080"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 14, cfg.Availability.DefaultHorizonDays)
	assert.Equal(t, 4, cfg.Availability.DefaultSlotDurationHours)
	assert.InDelta(t, 0.7, cfg.AddressParser.ConfidenceThreshold, 1e-9)
	assert.Equal(t, "training:progress", cfg.Redis.KeyPrefix)
	assert.Equal(t, "from-file", cfg.Database.Password)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load(writeConfig(t, minimalConfig+`
[address_parser]
enabled = true
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "key", cfg.AddressParser.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	tests := []struct {
		name  string
		extra string
	}{
		{name: "horizon too long", extra: "[availability]\ndefault_horizon_days = 61\n"},
		{name: "slot too long", extra: "[availability]\ndefault_slot_duration_hours = 25\n"},
		{name: "bad timezone", extra: "[availability]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "threshold above one", extra: "[address_parser]\nconfidence_threshold = 1.5\n"},
		{name: "parser without key", extra: "[address_parser]\nenabled = true\n"},
		{name: "zero burst", extra: "[rate_limit]\nburst = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, minimalConfig+tt.extra))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", d.DSN())
}
