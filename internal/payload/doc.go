// Package payload locates the compiled wasm artifact, verifies it
// when the configuration provides verification material, and stages
// the loose copies that become archive entries.
//
// Staging is scoped: a Stage records every file it creates and its
// Cleanup removes them on all pipeline exit paths, so a failed run
// never leaves orphaned loose copies behind.
package payload
