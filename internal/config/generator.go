package config

import (
	"bytes"
	"fmt"
)

// Generator generates Lua configuration code from a Config.
type Generator struct {
	indent string
}

// NewGenerator creates a new Lua config generator.
func NewGenerator() *Generator {
	return &Generator{indent: "  "}
}

// Generate renders a Config as a formatted vfspack.lua file. The
// output round-trips through Parser.ParseString.
func (g *Generator) Generate(config *Config) (string, error) {
	if err := config.Validate(); err != nil {
		return "", fmt.Errorf("generate config: %w", err)
	}

	var buf bytes.Buffer

	buf.WriteString("-- vfspack build configuration\n")
	buf.WriteString("-- The read-only 'platform' table (platform.os, platform.arch,\n")
	buf.WriteString("-- platform.distro, platform.when) is available for conditionals.\n\n")

	buf.WriteString("pack = {\n")

	if config.Meta.Name != "" || config.Meta.Description != "" {
		buf.WriteString(g.indent + "meta = {\n")
		if config.Meta.Name != "" {
			fmt.Fprintf(&buf, "%sname = %q,\n", g.indent+g.indent, config.Meta.Name)
		}
		if config.Meta.Description != "" {
			fmt.Fprintf(&buf, "%sdescription = %q,\n", g.indent+g.indent, config.Meta.Description)
		}
		buf.WriteString(g.indent + "},\n")
	}

	buf.WriteString(g.indent + "artifact = {\n")
	fmt.Fprintf(&buf, "%spath = %q,\n", g.indent+g.indent, config.Artifact.Path)
	if config.Artifact.Checksum != "" {
		fmt.Fprintf(&buf, "%schecksum = %q,\n", g.indent+g.indent, config.Artifact.Checksum)
	}
	if config.Artifact.Signature != "" {
		fmt.Fprintf(&buf, "%ssignature = %q,\n", g.indent+g.indent, config.Artifact.Signature)
		fmt.Fprintf(&buf, "%skey = %q,\n", g.indent+g.indent, config.Artifact.Key)
	}
	buf.WriteString(g.indent + "},\n")

	buf.WriteString(g.indent + "archive = {\n")
	fmt.Fprintf(&buf, "%spath = %q,\n", g.indent+g.indent, config.Archive.Path)
	buf.WriteString(g.indent + "},\n")

	buf.WriteString(g.indent + "entries = {\n")
	for _, entry := range config.Entries {
		fmt.Fprintf(&buf, "%s%q,\n", g.indent+g.indent, entry)
	}
	buf.WriteString(g.indent + "},\n")

	if config.Options.StagingDir != "" && config.Options.StagingDir != "." || config.Options.KeepLoose {
		buf.WriteString(g.indent + "options = {\n")
		if config.Options.StagingDir != "" && config.Options.StagingDir != "." {
			fmt.Fprintf(&buf, "%sstaging_dir = %q,\n", g.indent+g.indent, config.Options.StagingDir)
		}
		if config.Options.KeepLoose {
			fmt.Fprintf(&buf, "%skeep_loose = true,\n", g.indent+g.indent)
		}
		buf.WriteString(g.indent + "},\n")
	}

	buf.WriteString("}\n")

	return buf.String(), nil
}
