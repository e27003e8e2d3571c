package main

import (
	"context"
	"fmt"

	"vfspack/internal/payload"
)

// runVerify handles the `vfspack verify` subcommand.
func runVerify(args []string) error {
	showHelp := false
	configPath := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp = true
		case "--config", "-c":
			i++
			if i >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if showHelp {
		printVerifyHelp()
		return nil
	}

	cfg, err := loadConfig(context.Background(), configPath)
	if err != nil {
		return err
	}

	if cfg.Artifact.Checksum == "" && cfg.Artifact.Signature == "" {
		return fmt.Errorf("no verification configured: set artifact.checksum or artifact.signature in %s", "vfspack.lua")
	}

	artifact, err := payload.Resolve(cfg.Artifact.Path)
	if err != nil {
		return err
	}

	verifier := payload.NewVerifier()

	if cfg.Artifact.Checksum != "" {
		if err := verifier.VerifyChecksum(artifact.Path, cfg.Artifact.Checksum); err != nil {
			return fmt.Errorf("verify checksum: %w", err)
		}
		fmt.Printf("Checksum OK (%s)\n", artifact.SHA256)
	}

	if cfg.Artifact.Signature != "" {
		if err := verifier.VerifySignature(artifact.Path, cfg.Artifact.Signature, cfg.Artifact.Key); err != nil {
			return fmt.Errorf("verify signature: %w", err)
		}
		fmt.Println("Signature OK")
	}

	return nil
}

func printVerifyHelp() {
	fmt.Println("Usage: vfspack verify [options]")
	fmt.Println()
	fmt.Println("Verify the compiled payload against the configured checksum")
	fmt.Println("file and/or detached GPG signature, without packaging.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -c, --config FILE   Build configuration (default: vfspack.lua if present)")
	fmt.Println("  -h, --help          Show this help")
}
