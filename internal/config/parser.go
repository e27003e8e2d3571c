package config

import (
	"context"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"vfspack/internal/platform"
)

// Parser parses Lua build configurations with build host injection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given host detector.
// A nil detector skips platform injection (the "platform" global is
// then absent from the Lua environment).
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError represents a config parsing error with a friendly
// message plus the raw Lua detail.
type ParseError struct {
	Message string
	Detail  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseString parses a Lua build configuration from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseFile parses a Lua build configuration from a file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return p.ParseString(ctx, string(data))
}

// LoadOrDefault parses the config file at path, or returns the
// default configuration if the file does not exist. Any other read or
// parse failure is an error: a broken config must not silently fall
// back to defaults.
func (p *Parser) LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	return p.ParseFile(ctx, path)
}

// extractConfig extracts the config from a Lua state. It expects a
// global "pack" table with the config structure.
func extractConfig(L *lua.LState) (*Config, error) {
	packTable := L.GetGlobal("pack")
	if packTable.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'pack' table",
			Detail:  fmt.Sprintf("expected table, got %s", packTable.Type()),
		}
	}

	config := Default()
	table := packTable.(*lua.LTable)

	if metaVal := table.RawGetString("meta"); metaVal.Type() == lua.LTTable {
		config.Meta = extractMeta(metaVal.(*lua.LTable))
	}

	if artifactVal := table.RawGetString("artifact"); artifactVal.Type() == lua.LTTable {
		config.Artifact = extractArtifact(artifactVal.(*lua.LTable), config.Artifact)
	}

	if archiveVal := table.RawGetString("archive"); archiveVal.Type() == lua.LTTable {
		if pathVal := archiveVal.(*lua.LTable).RawGetString("path"); pathVal.Type() == lua.LTString {
			config.Archive.Path = pathVal.String()
		}
	}

	if entriesVal := table.RawGetString("entries"); entriesVal.Type() == lua.LTTable {
		config.Entries = extractEntries(entriesVal.(*lua.LTable))
	}

	if optionsVal := table.RawGetString("options"); optionsVal.Type() == lua.LTTable {
		config.Options = extractOptions(optionsVal.(*lua.LTable), config.Options)
	}

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// extractMeta extracts metadata from a Lua table.
func extractMeta(table *lua.LTable) Meta {
	meta := Meta{}

	if nameVal := table.RawGetString("name"); nameVal.Type() == lua.LTString {
		meta.Name = nameVal.String()
	}
	if descVal := table.RawGetString("description"); descVal.Type() == lua.LTString {
		meta.Description = descVal.String()
	}

	return meta
}

// extractArtifact extracts the artifact section, starting from the
// defaults so omitted fields keep their default values.
func extractArtifact(table *lua.LTable, artifact Artifact) Artifact {
	if pathVal := table.RawGetString("path"); pathVal.Type() == lua.LTString {
		artifact.Path = pathVal.String()
	}
	if checksumVal := table.RawGetString("checksum"); checksumVal.Type() == lua.LTString {
		artifact.Checksum = checksumVal.String()
	}
	if sigVal := table.RawGetString("signature"); sigVal.Type() == lua.LTString {
		artifact.Signature = sigVal.String()
	}
	if keyVal := table.RawGetString("key"); keyVal.Type() == lua.LTString {
		artifact.Key = keyVal.String()
	}

	return artifact
}

// extractEntries extracts the entry name array. Nil values from
// platform conditionals (platform.when) are skipped.
func extractEntries(table *lua.LTable) []string {
	var entries []string

	table.ForEach(func(key, value lua.LValue) {
		if value.Type() != lua.LTString {
			return
		}
		entries = append(entries, value.String())
	})

	return entries
}

// extractOptions extracts packaging options.
func extractOptions(table *lua.LTable, options Options) Options {
	if dirVal := table.RawGetString("staging_dir"); dirVal.Type() == lua.LTString {
		options.StagingDir = dirVal.String()
	}
	if keepVal := table.RawGetString("keep_loose"); keepVal.Type() == lua.LTBool {
		options.KeepLoose = bool(keepVal.(lua.LBool))
	}

	return options
}
