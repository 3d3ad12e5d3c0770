package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "3000"},
		Database: DatabaseConfig{Driver: "postgres", Host: "db", Name: "tienda", User: "u", Port: "5432", Password: "p", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "redis", Port: "6379"},
		JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef", AccessTokenExpiry: time.Hour},
		Upload:   UploadConfig{MountPath: "/images", MaxSize: 2 << 20},
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.JWT.Secret = "short" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "sqlite" }, wantErr: true},
		{name: "mysql driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "missing redis host", mutate: func(c *Config) { c.Redis.Host = "" }, wantErr: true},
		{name: "relative mount path", mutate: func(c *Config) { c.Upload.MountPath = "images" }, wantErr: true},
		{name: "zero upload size", mutate: func(c *Config) { c.Upload.MaxSize = 0 }, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_GetDatabaseDSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tienda sslmode=disable", cfg.GetDatabaseDSN())

	cfg.Database.Driver = "mysql"
	cfg.Database.Port = "3306"
	assert.Equal(t, "u:p@tcp(db:3306)/tienda?charset=utf8mb4&parseTime=True&loc=UTC", cfg.GetDatabaseDSN())
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TIENDA_TEST_SLICE", "http://a.com, http://b.com")
	got := getEnvAsSlice("TIENDA_TEST_SLICE", nil)
	require.Len(t, got, 2)
	assert.Equal(t, "http://b.com", got[1])

	assert.Equal(t, []string{"x"}, getEnvAsSlice("TIENDA_TEST_MISSING", []string{"x"}))
}
