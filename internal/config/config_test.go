package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	defer func() {
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET_KEY")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	if cfg.MessagePageSize != 50 {
		t.Errorf("MessagePageSize = %d, want 50", cfg.MessagePageSize)
	}

	if cfg.FanoutWorkers != 4 {
		t.Errorf("FanoutWorkers = %d, want 4", cfg.FanoutWorkers)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "Short JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD":    "password",
				"JWT_SECRET_KEY": "too_short",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			if _, err := LoadConfig(); err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	cfg := &Config{
		AppEnv:    "production",
		DBSSLMode: "disable",
		JWTSecret: "a_real_secret_key_that_is_long_enough_123",
	}

	if err := cfg.ValidateProductionSecurity(); err == nil {
		t.Error("expected error for sslmode=disable in production")
	}

	cfg.DBSSLMode = "require"
	if err := cfg.ValidateProductionSecurity(); err != nil {
		t.Errorf("ValidateProductionSecurity() error = %v", err)
	}

	cfg.AppEnv = "development"
	cfg.DBSSLMode = "disable"
	if err := cfg.ValidateProductionSecurity(); err != nil {
		t.Errorf("development env should skip production checks, got %v", err)
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "social",
		DBSSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=app password=secret dbname=social sslmode=require"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
