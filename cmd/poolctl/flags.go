package main

import (
	"flag"
	"fmt"

	"github.com/flier/memarena/internal/xflag"
)

// cliConfig mirrors the reference driver's flag surface:
// -s/--size, -a/--alignment, -n/--name, -i/--interactive, -t/--test,
// -d/--debug.
type cliConfig struct {
	size        int
	alignment   int
	name        string
	interactive bool
	selfTest    bool
	debug       bool
}

// parseAlignment validates that s is a positive power of two, the same
// check memory_pool_init performs on its -a argument.
func parseAlignment(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n <= 0 || n&(n-1) != 0 {
		return 0, fmt.Errorf("alignment must be a power of two, got %d", n)
	}
	return n, nil
}

// Flags are registered on the default flag.CommandLine, matching
// internal/xflag.Func's own expectations (it always registers against
// the package-level flag set). Short and long spellings have separate
// storage; parseFlags merges each pair into one cliConfig field.
var (
	size      = flag.Int("s", 1<<20, "pool size in bytes")
	sizeLong  = flag.Int("size", 0, "pool size in bytes")
	alignment = xflag.Func("a", "memory alignment in bytes, a power of two (default 8)", parseAlignment)
	alignLong = xflag.Func("alignment", "memory alignment in bytes, a power of two (default 8)", parseAlignment)

	name     = flag.String("n", "default", "pool name")
	nameLong = flag.String("name", "", "pool name")

	interactive     = flag.Bool("i", false, "run in interactive mode")
	interactiveLong = flag.Bool("interactive", false, "run in interactive mode")

	selfTest     = flag.Bool("t", false, "run the built-in self-test")
	selfTestLong = flag.Bool("test", false, "run the built-in self-test")

	debugFlag     = flag.Bool("d", false, "enable debug logging")
	debugFlagLong = flag.Bool("debug", false, "enable debug logging")
)

// parseFlags parses args against the package-level flag set and resolves
// short/long aliases into a single cliConfig.
func parseFlags(args []string) (cliConfig, error) {
	if err := flag.CommandLine.Parse(args); err != nil {
		return cliConfig{}, err
	}

	cfg := cliConfig{
		size:        *size,
		alignment:   8,
		name:        *name,
		interactive: *interactive || *interactiveLong,
		selfTest:    *selfTest || *selfTestLong,
		debug:       *debugFlag || *debugFlagLong,
	}

	if *sizeLong != 0 {
		cfg.size = *sizeLong
	}
	if nameLong != nil && *nameLong != "" {
		cfg.name = *nameLong
	}
	if *alignment != 0 {
		cfg.alignment = *alignment
	} else if *alignLong != 0 {
		cfg.alignment = *alignLong
	}

	return cfg, nil
}
