package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"empty backend", Config{DataDir: "/var/lib/parlor"}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "postgres", DataDir: "/var/lib/parlor"}, ErrBackendUnknown},
		{"backend names are case sensitive", Config{Backend: "SQLite", DataDir: "/var/lib/parlor"}, ErrBackendUnknown},
		{"sqlite", Config{Backend: BackendSQLite, DataDir: "/var/lib/parlor"}, nil},
		{"empty DataDir is left to Attach", Config{Backend: BackendSQLite}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
