// Package config models the engine tunables spec §9 leaves to the
// implementer: whether to pay for an occurs check, an optional bound on
// how many solutions a query may enumerate before the resolver gives up,
// and a substitution depth setting (MaxDepth) that the engine carries but
// does not read. Assembled with functional
// options, the same construction idiom the teacher's pkg/minikanren uses
// for Model and FDVariable.
package config

// Config holds one Engine's resolution tunables. The zero value is the
// spec's own baseline behavior: no occurs check, no depth bound, no
// solution cap.
type Config struct {
	OccursCheck  bool
	MaxDepth     int
	MaxSolutions int
}

// Option configures a Config at construction time.
type Option func(*Config)

// New assembles a Config from the given options.
func New(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithOccursCheck turns on UnifyWithOccursCheck for every unification the
// engine performs, trading the source engine's default permissiveness
// (spec §9: "the source engine omits it") for protection against cyclic
// substitutions on pathological queries.
func WithOccursCheck() Option {
	return func(c *Config) { c.OccursCheck = true }
}

// WithMaxDepth records a bound on nested compound/list levels in
// Config.MaxDepth. Neither pkg/engine nor pkg/subst.Apply reads it, so
// substitution depth is unbounded whatever the value.
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

// WithMaxSolutions caps how many answers Engine.Solve will produce before
// closing the stream on its own, independent of whatever consumer happens
// to be draining it. Zero (the default) means unbounded.
func WithMaxSolutions(n int) Option {
	return func(c *Config) { c.MaxSolutions = n }
}
