// Command poolctl is the CLI driver for package arena: flag parsing,
// a one-shot demonstration mode, a built-in self-test, and an
// interactive REPL.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/flier/memarena/arena"
	"github.com/flier/memarena/arena/arenaerr"
	"github.com/flier/memarena/internal/debug"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (exitCode int) {
	cfg, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := newLogger(cfg.debug)
	defer func() { _ = logger.Sync() }()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("poolctl panicked",
				zap.Any("panic", r),
				zap.String("stack", debug.Stack(3)),
			)
			exitCode = 1
		}
	}()

	a := new(arena.Arena)
	if err := a.Init(arena.Config{
		Size:      cfg.size,
		Alignment: cfg.alignment,
		Name:      cfg.name,
		Debug:     cfg.debug,
	}); err != nil {
		logger.Error("failed to initialize pool", zap.Error(err))
		return 1
	}

	logger.Info("pool initialized",
		zap.String("name", cfg.name),
		zap.Int("size", cfg.size),
		zap.Int("alignment", cfg.alignment),
	)

	switch {
	case cfg.interactive:
		runREPL(a, logger)
	case cfg.selfTest:
		runSelfTest(a, logger)
	default:
		fmt.Println(a.Dump())
		runSelfTest(a, logger)
	}

	if err := a.Validate(); err != nil {
		logger.Error("pool validation failed", zap.Error(err))
		exitCode = 1
	}

	if err := a.Destroy(); err != nil {
		var leak *arenaerr.LeakReport
		if leak, _ = arenaerr.AsA[*arenaerr.LeakReport](err); leak != nil {
			logger.Warn("pool destroyed with outstanding allocations",
				zap.Uint64("allocations", leak.Allocations),
				zap.Uint64("deallocations", leak.Deallocations),
			)
		}
	}

	logger.Info("pool terminated", zap.String("name", cfg.name))

	return exitCode
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.DisableStacktrace = true
		logger, err = cfg.Build()
	}
	if err != nil {
		// zap itself failed to construct; fall back to a no-op logger
		// rather than taking the whole CLI down over logging.
		return zap.NewNop()
	}

	return logger
}
