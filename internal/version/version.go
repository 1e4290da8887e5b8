package version

import (
	"strconv"
	"strings"

	"vergate/internal/ports"
)

// ParseMajor extracts the comparable major version from a raw runtime version
// string. Two historical shapes are understood:
//
//   - legacy two-part scheme "1.X.Y_Z" (e.g. "1.8.0_392") -> X
//   - modern leading-integer scheme "X.Y.Z", "X" or "X-suffix"
//     (e.g. "11.0.21", "9", "22-ea") -> X
//
// Absence of a parseable version is data, not an error: empty or garbage input
// yields 0, the oldest possible version.
func ParseMajor(raw string) int {
	if raw == "" {
		return 0
	}
	if strings.HasPrefix(raw, "1.") {
		rest := raw[2:]
		if dot := strings.IndexByte(rest, '.'); dot >= 0 {
			rest = rest[:dot]
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0
		}
		return n
	}
	major := raw
	if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		major = raw[:dot]
	}
	// Strip pre-release/build suffixes such as "-ea" or "+35".
	end := 0
	for end < len(major) && major[end] >= '0' && major[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(major[:end])
	if err != nil {
		return 0
	}
	return n
}

// Oracle classifies the running environment. The version source is an explicit
// Environment accessor rather than ambient process globals.
type Oracle struct {
	env ports.Environment
}

func NewOracle(env ports.Environment) Oracle {
	return Oracle{env: env}
}

// CurrentMajor re-reads the environment on every call; there is no cache.
func (o Oracle) CurrentMajor() int {
	return ParseMajor(o.env.CurrentVersionString())
}
