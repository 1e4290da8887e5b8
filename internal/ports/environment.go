package ports

// Environment reads the live runtime's version identification.
// Implementations MUST re-read on every call; callers rely on the absence of
// caching to observe the environment as it currently is.
type Environment interface {
	CurrentVersionString() string
}

// EnvironmentFunc adapts a plain function to Environment.
type EnvironmentFunc func() string

func (f EnvironmentFunc) CurrentVersionString() string { return f() }
