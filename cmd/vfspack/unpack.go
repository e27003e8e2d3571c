package main

import (
	"context"
	"fmt"

	"vfspack/internal/archive"
)

// runUnpack handles the `vfspack unpack` subcommand.
func runUnpack(args []string) error {
	showHelp := false
	configPath := ""
	archivePath := ""
	destDir := "."

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
		case "-C", "--dir":
			i++
			if i >= len(args) {
				return fmt.Errorf("-C requires a directory")
			}
			destDir = args[i]
		default:
			if archivePath != "" {
				return fmt.Errorf("unexpected argument: %s", args[i])
			}
			archivePath = args[i]
		}
	}

	if showHelp {
		printUnpackHelp()
		return nil
	}

	if archivePath == "" {
		cfg, err := loadConfig(context.Background(), configPath)
		if err != nil {
			return err
		}
		archivePath = cfg.Archive.Path
	}

	if err := archive.Unpack(archivePath, destDir); err != nil {
		return err
	}

	fmt.Printf("Extracted %s to %s\n", archivePath, destDir)
	return nil
}

func printUnpackHelp() {
	fmt.Println("Usage: vfspack unpack [options] [ARCHIVE]")
	fmt.Println()
	fmt.Println("Extract a tar archive. Without an ARCHIVE argument the")
	fmt.Println("configured archive path is extracted.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -C, --dir DIR       Destination directory (default: current directory)")
	fmt.Println("  -c, --config FILE   Build configuration (default: vfspack.lua if present)")
	fmt.Println("  -h, --help          Show this help")
}
