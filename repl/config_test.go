package repl

import (
	"errors"
	"os"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{Engine: newMockEngine().factory()},
			wantErr: false,
		},
		{
			name:    "missing engine",
			cfg:     Config{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("Validate() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Engine: newMockEngine().factory()}
	cfg.applyDefaults()
	if cfg.WorkspaceRoot != os.TempDir() {
		t.Errorf("WorkspaceRoot = %q, want %q", cfg.WorkspaceRoot, os.TempDir())
	}

	cfg = Config{Engine: newMockEngine().factory(), WorkspaceRoot: "/custom"}
	cfg.applyDefaults()
	if cfg.WorkspaceRoot != "/custom" {
		t.Errorf("WorkspaceRoot = %q, want it preserved", cfg.WorkspaceRoot)
	}
}
