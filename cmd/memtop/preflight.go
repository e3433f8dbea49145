//go:build linux

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// smaps_rollup appeared in 4.14; older kernels still run but lose the
// per-process counters.
const (
	minKernelMajor = 4
	minKernelMinor = 14
)

// preflight checks the environment and returns the host description shown
// in the header. Not being root is only a warning: the kernel still permits
// reading your own rollups, and the collector's omission semantics handle
// the rest.
func preflight() (string, error) {
	if os.Geteuid() != 0 {
		log.Println("not running as root: only your own processes will be visible")
	}

	info, err := host.Info()
	if err != nil {
		return "unknown host", nil
	}
	if old, major, minor := kernelTooOld(info.KernelVersion); old {
		log.Printf("kernel %d.%d detected; smaps_rollup needs %d.%d+, per-process stats may be missing",
			major, minor, minKernelMajor, minKernelMinor)
	}
	return fmt.Sprintf("%s · %s", info.Hostname, info.KernelVersion), nil
}

// kernelTooOld parses "major.minor..." out of a kernel release string such
// as "6.8.0-41-generic". Unparseable versions are assumed new enough.
func kernelTooOld(version string) (bool, int, int) {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return false, 0, 0
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return false, 0, 0
	}
	minor, err := strconv.Atoi(leadingDigits(parts[1]))
	if err != nil {
		return false, 0, 0
	}
	old := major < minKernelMajor || (major == minKernelMajor && minor < minKernelMinor)
	return old, major, minor
}

func leadingDigits(s string) string {
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}
