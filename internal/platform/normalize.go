package platform

import "strings"

// archAliases maps raw architecture strings to normalized names.
var archAliases = map[string]string{
	"amd64":   "amd64",
	"x86_64":  "amd64",
	"arm64":   "arm64",
	"aarch64": "arm64",
}

// normalizeArch converts GOARCH values to normalized architecture
// names. Unrecognized architectures pass through unchanged: the value
// is informational (journal provenance), not a support gate.
func normalizeArch(arch string) string {
	if normalized, ok := archAliases[arch]; ok {
		return normalized
	}
	return arch
}

// normalizeID converts distro IDs and versions to lowercase trimmed
// form for consistency across gopsutil backends.
func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
