package caustic

// Default limits, in the teacher's DefaultCallstackLimit/DefaultLoopLimit
// style (hucsmn/peg, peg.go).
const (
	// DefaultScheduleLimit bounds the number of fixed-point iterations the
	// compile scheduler will run before giving up on the candidate set
	// (spec §4.5 says nothing should loop forever even on a grammar that
	// never converges).
	DefaultScheduleLimit = 1000
	// DefaultRepeatUnroll bounds a Repeat node's greedy match loop when its
	// max is unbounded, guarding against a pathological zero-width
	// sub-match looping forever.
	DefaultRepeatUnroll = 100000
)

// Config holds the tunables a host may set when constructing a Grammar,
// in the teacher's plain-struct style (hucsmn/peg's Config) rather than a
// config-file loader — file/env loading is explicitly the host's job
// (spec §1 Non-goals).
type Config struct {
	// ScheduleLimit caps compile scheduler iterations. Zero means
	// DefaultScheduleLimit.
	ScheduleLimit int
	// RepeatUnroll caps a single Repeat node's greedy matches when its max
	// is unbounded. Zero means DefaultRepeatUnroll.
	RepeatUnroll int
	// TrackIndentation toggles whether Indentation nodes are permitted to
	// mutate their stack; false makes every Indentation node a permanent
	// NO_CHANGE, for grammars that never use indentation-sensitivity.
	TrackIndentation bool
	// IncrementalPosition selects buffer.NewCursor (true, incremental
	// line/column) over buffer.NewComputingCursor (false, on-demand) for
	// cursors this Grammar creates via NewMatcher.
	IncrementalPosition bool
}

// DefaultConfig returns the configuration used when a Grammar is created
// with NewGrammar(nil): scheduler and repeat limits at their defaults,
// indentation tracking on, incremental position tracking on.
func DefaultConfig() Config {
	return Config{
		ScheduleLimit:       DefaultScheduleLimit,
		RepeatUnroll:        DefaultRepeatUnroll,
		TrackIndentation:    true,
		IncrementalPosition: true,
	}
}

func (c Config) scheduleLimit() int {
	if c.ScheduleLimit > 0 {
		return c.ScheduleLimit
	}
	return DefaultScheduleLimit
}

func (c Config) repeatUnroll() int {
	if c.RepeatUnroll > 0 {
		return c.RepeatUnroll
	}
	return DefaultRepeatUnroll
}
