package builder

// compileOptions holds the effective settings of one compile call.
// Defaults: context validation on, lenient resolution.
type compileOptions struct {
	validate bool
	strict   bool
	maxDepth int
}

// CompileOption adjusts a compile call.
type CompileOption func(*compileOptions)

func defaultCompileOptions() compileOptions {
	return compileOptions{validate: true}
}

// WithStrict fails compilation when any placeholder stays unresolved,
// aggregating every missing name into one error.
func WithStrict() CompileOption {
	return func(o *compileOptions) { o.strict = true }
}

// WithoutValidation skips context validation against the registry.
func WithoutValidation() CompileOption {
	return func(o *compileOptions) { o.validate = false }
}

// WithMaxDepth bounds recursive variable-references-variable
// resolution.
func WithMaxDepth(n int) CompileOption {
	return func(o *compileOptions) { o.maxDepth = n }
}
