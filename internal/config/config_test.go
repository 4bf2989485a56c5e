package config

import (
	"errors"
	"testing"

	"github.com/BonHowi/plowgen/internal/dbt"
)

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	if cfg.PackageGit != dbt.DefaultPackageGit {
		t.Errorf("PackageGit = %q, want %q", cfg.PackageGit, dbt.DefaultPackageGit)
	}
	if cfg.PackageRevision != dbt.DefaultPackageRevision {
		t.Errorf("PackageRevision = %q, want %q", cfg.PackageRevision, dbt.DefaultPackageRevision)
	}
	if cfg.OnCollision != CollisionAsk {
		t.Errorf("OnCollision = %q, want %q", cfg.OnCollision, CollisionAsk)
	}
	if cfg.UseDbtInit {
		t.Error("UseDbtInit = true, want false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad collision policy", func(c *Config) { c.OnCollision = "merge" }, ErrInvalidCollisionPolicy},
		{"empty package git", func(c *Config) { c.PackageGit = "" }, ErrInvalidConfig},
		{"empty package ref", func(c *Config) { c.PackageRevision = "" }, ErrInvalidConfig},
		{"empty output root", func(c *Config) { c.OutputRoot = "" }, ErrInvalidConfig},
		{"zero indent", func(c *Config) { c.Indent = 0 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
