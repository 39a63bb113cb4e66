package version

import (
	"runtime/debug"
	"strings"
)

// String reports the module version baked into the build, or "(devel)" for
// local and pseudo-versioned builds.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	v := info.Main.Version
	if v == "" || v == "(devel)" || strings.Contains(v, "+dirty") || isPseudoVersion(v) {
		return "(devel)"
	}
	return v
}

func isPseudoVersion(v string) bool {
	v, _, _ = strings.Cut(v, "+")
	parts := strings.Split(v, "-")
	if len(parts) < 3 {
		return false
	}
	ts, hash := parts[len(parts)-2], parts[len(parts)-1]
	if len(ts) != 14 || strings.IndexFunc(ts, notDigit) >= 0 {
		return false
	}
	return len(hash) >= 12 && strings.IndexFunc(hash, notHex) < 0
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

func notHex(r rune) bool {
	return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F')
}
