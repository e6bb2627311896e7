// Package cli provides Cobra flag registration helpers.
package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// RegisterFlag registers a command-line flag for a Cobra command based on the
// provided name, shorthand, default value, usage description, and target
// variable. It supports bool, string, int, time.Duration, and string slice
// values; the target must be a pointer of the matching type. An unsupported
// pairing panics, since flag registration happens at init time and a mismatch
// is a programming error.
func RegisterFlag(cmd *cobra.Command, name, shorthand string, value interface{}, usage string, target interface{}) {
	// Bool flags show their zero default explicitly, matching cobra's output
	// for the other types.
	if v, ok := value.(bool); ok && !v {
		usage += "\n (default false)"
	} else {
		usage += "\n"
	}

	switch v := value.(type) {
	case bool:
		cmd.Flags().BoolVarP(mustTarget[bool](target), name, shorthand, v, usage)
	case string:
		cmd.Flags().StringVarP(mustTarget[string](target), name, shorthand, v, usage)
	case int:
		cmd.Flags().IntVarP(mustTarget[int](target), name, shorthand, v, usage)
	case time.Duration:
		cmd.Flags().DurationVarP(mustTarget[time.Duration](target), name, shorthand, v, usage)
	case []string:
		cmd.Flags().StringSliceVarP(mustTarget[[]string](target), name, shorthand, v, usage)
	default:
		panic("unsupported flag type for --" + name)
	}
}

// mustTarget asserts the target pointer matches the default value's type.
func mustTarget[T any](target interface{}) *T {
	p, ok := target.(*T)
	if !ok {
		panic("flag target must be a pointer matching the default value's type")
	}
	return p
}
