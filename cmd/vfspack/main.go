package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("vfspack %s\n", Version)
			return
		case "pack":
			if err := runPack(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "inspect":
			if err := runInspect(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "unpack":
			if err := runUnpack(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "verify":
			if err := runVerify(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "init":
			if err := runInit(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("vfspack - package wasm agent payloads into a USTAR tar archive")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vfspack --version            Show version information")
	fmt.Println("  vfspack pack [options]       Build the archive from the compiled payload")
	fmt.Println("  vfspack inspect [ARCHIVE]    List the entries of an archive")
	fmt.Println("  vfspack unpack [ARCHIVE]     Extract an archive")
	fmt.Println("  vfspack verify [options]     Verify the payload without packaging")
	fmt.Println("  vfspack init [options]       Write a default vfspack.lua")
	fmt.Println()
	fmt.Println("Run a subcommand with --help for its options.")
}
