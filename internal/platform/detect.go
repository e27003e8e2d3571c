package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host detection.
type RealDetector struct{}

// NewDetector creates a new host detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns build host information. OS and architecture come
// from the runtime; Linux distribution details come from gopsutil.
//
// Distro detection failure is not fatal: the packaging step works the
// same on every host, so Detect degrades to OS/arch only. Context
// cancellation is fatal.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
		Arch:    normalizeArch(runtime.GOARCH),
	}

	if runtime.GOOS != "linux" {
		return info, nil
	}

	id, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		// Graceful fallback: OS/arch only.
		return info, nil
	}

	info.Distro = normalizeID(id)
	info.DistroVersion = normalizeID(version)
	return info, nil
}
