// Package metrics aggregates training throughput and describes the host the
// run executes on.
package metrics

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Host summarizes the machine for the startup log line.
type Host struct {
	CPU          string
	LogicalCores int
	FMA          bool
	AVX2         bool
	GoVersion    string
}

// DetectHost reads CPU details through cpuid.
func DetectHost() Host {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = cpuid.CPU.VendorString
	}
	if brand == "" {
		brand = runtime.GOARCH
	}
	return Host{
		CPU:          brand,
		LogicalCores: cpuid.CPU.LogicalCores,
		FMA:          cpuid.CPU.Supports(cpuid.FMA3),
		AVX2:         cpuid.CPU.Supports(cpuid.AVX2),
		GoVersion:    runtime.Version(),
	}
}

func (h Host) String() string {
	return fmt.Sprintf("cpu=%q cores=%d fma=%t avx2=%t go=%s", h.CPU, h.LogicalCores, h.FMA, h.AVX2, h.GoVersion)
}
