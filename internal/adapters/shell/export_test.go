package shell

// Exported for white-box testing.
var (
	ResolveEnvironment = resolveEnvironment
	LookPath           = lookPath
)

// NewTailWriter exposes tailWriter for tests.
func NewTailWriter(lines int) interface {
	Write(p []byte) (int, error)
	String() string
} {
	return &tailWriter{max: lines}
}
