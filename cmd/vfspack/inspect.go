package main

import (
	"context"
	"fmt"

	"vfspack/internal/archive"
)

// runInspect handles the `vfspack inspect` subcommand.
func runInspect(args []string) error {
	showHelp := false
	configPath := ""
	archivePath := ""

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
			if archivePath != "" {
				return fmt.Errorf("unexpected argument: %s", args[i])
			}
			archivePath = args[i]
		}
	}

	if showHelp {
		printInspectHelp()
		return nil
	}

	if archivePath == "" {
		cfg, err := loadConfig(context.Background(), configPath)
		if err != nil {
			return err
		}
		archivePath = cfg.Archive.Path
	}

	entries, err := archive.List(archivePath)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d entries\n", archivePath, len(entries))
	for _, entry := range entries {
		fmt.Printf("  %-24s %8d bytes  mode %04o  %s\n",
			entry.Name, entry.Size, entry.Mode, entry.Format)
	}

	return nil
}

func printInspectHelp() {
	fmt.Println("Usage: vfspack inspect [options] [ARCHIVE]")
	fmt.Println()
	fmt.Println("List the entries of a tar archive. Without an ARCHIVE argument")
	fmt.Println("the configured archive path is inspected.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -c, --config FILE   Build configuration (default: vfspack.lua if present)")
	fmt.Println("  -h, --help          Show this help")
}
