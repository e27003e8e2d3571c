package config

// Defaults reproduce the original packaging script's fixed paths.
const (
	// DefaultArtifactPath is where the Rust wasm build leaves the
	// compiled payload.
	DefaultArtifactPath = "hello_wasm/target/wasm32-unknown-unknown/release/hello_wasm.wasm"

	// DefaultArchivePath is the archive destination consumed by the
	// kernel's embedded VFS.
	DefaultArchivePath = "src/archive.tar"

	// DefaultConfigFile is the build configuration file name looked
	// up in the working directory.
	DefaultConfigFile = "vfspack.lua"
)

// DefaultEntries are the archive entry names, in order.
var DefaultEntries = []string{"agent1.wasm", "agent2.wasm"}
