package config

import "testing"

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "explicit values",
			env:  map[string]string{"PORT": "9000", "SKIP_AUTH": "true", "RETENTION_DAYS": "30", "LOCALE": "de-DE"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" || !cfg.SkipAuth || cfg.RetentionDays != 30 || cfg.Locale != "de-DE" {
					t.Errorf("unexpected config %+v", cfg)
				}
			},
		},
		{
			name: "invalid retention falls back",
			env:  map[string]string{"RETENTION_DAYS": "soon"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.RetentionDays != 90 {
					t.Errorf("RetentionDays = %d, want 90", cfg.RetentionDays)
				}
			},
		},
		{
			name: "production environment",
			env:  map[string]string{"ENVIRONMENT": "Production"},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.IsProduction() {
					t.Error("expected production")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestGetEnv_Unset(t *testing.T) {
	if got := getEnv("PATIENT_REPORTS_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q", got)
	}
	if got := getEnvInt("PATIENT_REPORTS_TEST_UNSET_KEY", 7); got != 7 {
		t.Errorf("getEnvInt() = %d", got)
	}
}
