package parsifal

import "github.com/TheCulprit/parsifal/internal/content"

// Option configures a Runtime.
type Option func(*Runtime)

// Source loads named text content for the file, all and library commands.
type Source = content.Source

// WithSeed fixes the random seed; runs with the same seed and template
// produce identical output.
func WithSeed(seed int64) Option {
	return func(r *Runtime) {
		r.seed = seed
		r.seeded = true
	}
}

// WithRootDir serves file, all and library from a directory tree.
func WithRootDir(root string) Option {
	return func(r *Runtime) {
		r.source = content.NewDir(root)
	}
}

// WithSource sets a custom content source.
func WithSource(s Source) Option {
	return func(r *Runtime) {
		r.source = s
	}
}

// WithFiles serves content from an in-memory map (for testing). Keys are
// slash-separated identifiers.
func WithFiles(files map[string]string) Option {
	return func(r *Runtime) {
		r.source = content.NewMap(files)
	}
}

// WithLibrary preloads a library directory when the runtime is created.
// Load failures surface on the first Parse call.
func WithLibrary(dir string) Option {
	return func(r *Runtime) {
		r.libraries = append(r.libraries, dir)
	}
}
