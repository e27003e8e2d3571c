// Package platform detects the build host (OS, architecture, Linux
// distribution) and exposes the result to Lua build configurations as
// a read-only table. Detection uses gopsutil with graceful fallback:
// if distro detection fails, OS/arch information is still returned.
//
// The payload itself always targets wasm32; platform information here
// describes the host that ran the packaging step and is recorded in
// the run journal for provenance.
package platform

import "context"

// Info contains build host information.
type Info struct {
	OS            string // "linux", "darwin", "windows"
	Arch          string // normalized: "amd64", "arm64", or raw GOARCH
	ArchRaw       string // original GOARCH value
	Distro        string // distro ID (Linux only, e.g. "debian")
	DistroVersion string // distro version (Linux only, e.g. "12")
}

// Detector detects build host information.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// IsLinux returns true if the host OS is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the host OS is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the host OS is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsAMD64 returns true for amd64 hosts.
func (i *Info) IsAMD64() bool {
	return i.Arch == "amd64"
}

// IsARM64 returns true for arm64 hosts.
func (i *Info) IsARM64() bool {
	return i.Arch == "arm64"
}

// Label returns a short human-readable host description, e.g.
// "linux/amd64 (debian 12)" or "darwin/arm64".
func (i *Info) Label() string {
	label := i.OS + "/" + i.Arch
	if i.Distro != "" {
		label += " (" + i.Distro
		if i.DistroVersion != "" {
			label += " " + i.DistroVersion
		}
		label += ")"
	}
	return label
}

// StaticDetector returns a fixed Info and never fails.
// Used by tests and by callers that already know the host.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the static info.
func (d *StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := d.Info
	return &info, nil
}
