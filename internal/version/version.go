package version

import (
	"regexp"
	"runtime/debug"
	"strings"
)

// Override is set at link time with -ldflags "-X .../version.Override=v1.2.3".
var Override string

const devel = "(devel)"

// pseudoVersion matches the vYYYYMMDDhhmmss-abcdefabcdef tail of module
// pseudo-versions.
var pseudoVersion = regexp.MustCompile(`-(\d+\.)?\d{14}-[0-9a-fA-F]{12,}$`)

// String reports the release playthru was built from, or "(devel)" for local
// and untagged builds.
func String() string {
	if Override != "" {
		return Override
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return devel
	}
	return normalize(info.Main.Version)
}

func normalize(v string) string {
	if v == "" || v == devel || strings.Contains(v, "+dirty") {
		return devel
	}
	base, _, _ := strings.Cut(v, "+")
	if pseudoVersion.MatchString(base) {
		return devel
	}
	return v
}
