package version

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vergate/internal/ports"
)

func TestParseMajorLegacyScheme(t *testing.T) {
	cases := map[string]int{
		"1.6.0_45":  6,
		"1.8.0":     8,
		"1.8.0_392": 8,
		"1.8":       8,
		"1.":        0,
		"1.x.0":     0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseMajor(in), "input %q", in)
	}
}

func TestParseMajorModernScheme(t *testing.T) {
	cases := map[string]int{
		"9":        9,
		"11":       11,
		"11.0.21":  11,
		"21.0.2":   21,
		"22-ea":    22,
		"21+35":    21,
		"17.0.9.1": 17,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseMajor(in), "input %q", in)
	}
}

func TestParseMajorAbsentOrGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "-ea", ".", "..", "ea-22"} {
		assert.Equal(t, 0, ParseMajor(in), "input %q", in)
	}
}

func TestParseMajorIsPure(t *testing.T) {
	for _, in := range []string{"1.8.0_392", "21.0.2", ""} {
		assert.Equal(t, ParseMajor(in), ParseMajor(in))
	}
}

func TestOracleRereadsEveryCall(t *testing.T) {
	calls := 0
	versions := []string{"1.8.0_392", "21.0.2"}
	o := NewOracle(ports.EnvironmentFunc(func() string {
		v := versions[calls%len(versions)]
		calls++
		return v
	}))
	assert.Equal(t, 8, o.CurrentMajor())
	assert.Equal(t, 21, o.CurrentMajor())
	assert.Equal(t, 2, calls)
}
