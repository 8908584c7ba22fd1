package privilege

// Gate reports whether the current process holds elevated rights.
// Implementations are pure queries with no side effects.
type Gate interface {
	Elevated() bool
}

// Func adapts a function to the Gate interface.
type Func func() bool

func (f Func) Elevated() bool { return f() }

// Current returns the platform gate for the running process.
func Current() Gate { return Func(elevated) }
