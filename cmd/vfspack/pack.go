package main

import (
	"context"
	"fmt"

	"vfspack/internal/config"
	"vfspack/internal/pipeline"
	"vfspack/internal/platform"
)

// runPack handles the `vfspack pack` subcommand.
func runPack(args []string) error {
	showHelp := false
	quiet := false
	keepLoose := false
	configPath := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp = true
		case "--quiet", "-q":
			quiet = true
		case "--keep-loose":
			keepLoose = true
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
		printPackHelp()
		return nil
	}

	ctx := context.Background()

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	stateDir, err := getStateDir()
	if err != nil {
		return err
	}

	packer, err := pipeline.NewPacker(cfg, pipeline.Options{
		StateDir:  stateDir,
		Logger:    newLogger(quiet),
		KeepLoose: keepLoose,
	})
	if err != nil {
		return err
	}

	result, err := packer.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s from %d wasm agent payloads.\n", result.ArchivePath, len(result.Entries))
	return nil
}

// loadConfig loads the build configuration. An explicitly named
// config file must exist; the default vfspack.lua is optional and
// falls back to the built-in defaults.
func loadConfig(ctx context.Context, configPath string) (*config.Config, error) {
	parser := config.NewParser(platform.NewDetector())

	if configPath != "" {
		return parser.ParseFile(ctx, configPath)
	}
	return parser.LoadOrDefault(ctx, config.DefaultConfigFile)
}

func printPackHelp() {
	fmt.Println("Usage: vfspack pack [options]")
	fmt.Println()
	fmt.Println("Duplicate the compiled wasm payload under the configured entry")
	fmt.Println("names, bundle the copies into a USTAR tar archive, and remove")
	fmt.Println("the loose copies.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -c, --config FILE   Build configuration (default: vfspack.lua if present)")
	fmt.Println("  -q, --quiet         Only log errors")
	fmt.Println("      --keep-loose    Keep the staged copies after archiving")
	fmt.Println("  -h, --help          Show this help")
}
