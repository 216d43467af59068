package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // prepare pre-existing files
		wantErr error
	}{
		{
			name:  "create_new_config",
			force: false,
			setup: nil, // no pre-existing file
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				t.Helper()

				if err := os.WriteFile(path, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				t.Helper()

				if err := os.WriteFile(path, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			// Create a Kong context with vars
			var cli struct {
				Intron string `default:"<!---freshmark"`
				Exon   string `default:"-->"`
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			initCmd := &Init{Force: tt.force}

			err = initCmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			// The generated file must be valid YAML holding the flag values.
			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var settings map[string]any
			if err := yaml.Unmarshal(content, &settings); err != nil {
				t.Fatalf("generated config is not valid YAML: %v", err)
			}

			if got := settings["intron"]; got != "<!---freshmark" {
				t.Errorf("expected intron marker, got %v", got)
			}
		})
	}
}
