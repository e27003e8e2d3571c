package config

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerate_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "defaults",
			config: Default(),
		},
		{
			name: "full",
			config: &Config{
				Meta: Meta{Name: "hello-vfs", Description: "agent payloads"},
				Artifact: Artifact{
					Path:      "build/hello_wasm.wasm",
					Checksum:  "build/checksums.sha256",
					Signature: "build/hello_wasm.wasm.sig",
					Key:       "keys/builder.asc",
				},
				Archive: Archive{Path: "out/archive.tar"},
				Entries: []string{"agent1.wasm", "agent2.wasm", "agent3.wasm"},
				Options: Options{StagingDir: "build/stage", KeepLoose: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			luaCode, err := NewGenerator().Generate(tt.config)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			parsed, err := NewParser(nil).ParseString(context.Background(), luaCode)
			if err != nil {
				t.Fatalf("generated config does not parse: %v\n%s", err, luaCode)
			}

			if diff := cmp.Diff(tt.config, parsed); diff != "" {
				t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	if _, err := NewGenerator().Generate(&Config{}); err == nil {
		t.Error("expected error for invalid config")
	}
}
