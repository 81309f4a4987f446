package app

import (
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

const testModeEnv = "MALLOPS_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

// InTestMode reports whether binaries should skip network side effects.
// The flag is read from MALLOPS_TEST_MODE once per process.
func InTestMode() bool {
	testModeOnce.Do(func() {
		testModeFlag.Store(os.Getenv(testModeEnv) == "1")
	})
	return testModeFlag.Load()
}

// BuildInfo identifies the running binary in startup logs.
type BuildInfo struct {
	Version  string
	Revision string
	Go       string
}

// ReadBuildInfo extracts module version and VCS revision when available.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{Version: "devel"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Go = bi.GoVersion
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.Revision = s.Value
		}
	}
	return info
}
