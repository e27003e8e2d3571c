package main

import (
	"fmt"
	"os"

	"vfspack/internal/config"
)

// runInit handles the `vfspack init` subcommand.
func runInit(args []string) error {
	showHelp := false
	force := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp = true
		case "--force", "-f":
			force = true
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if showHelp {
		printInitHelp()
		return nil
	}

	if !force {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultConfigFile)
		}
	}

	luaCode, err := config.NewGenerator().Generate(config.Default())
	if err != nil {
		return err
	}

	if err := os.WriteFile(config.DefaultConfigFile, []byte(luaCode), 0644); err != nil {
		return fmt.Errorf("write %s: %w", config.DefaultConfigFile, err)
	}

	fmt.Printf("Created %s\n", config.DefaultConfigFile)
	return nil
}

func printInitHelp() {
	fmt.Println("Usage: vfspack init [options]")
	fmt.Println()
	fmt.Println("Write a vfspack.lua with the default build configuration to")
	fmt.Println("the current directory.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -f, --force   Overwrite an existing vfspack.lua")
	fmt.Println("  -h, --help    Show this help")
}
