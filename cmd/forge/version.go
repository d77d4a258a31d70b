package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the CLI version: the module version when the binary was
// installed from a tagged release, otherwise the embedded VERSION file,
// suffixed with the short VCS revision when the build recorded one.
func Version() string {
	v := strings.TrimSpace(embeddedVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		return mv
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return v + "-dev+" + s.Value[:7]
		}
	}
	return v + "-dev"
}
