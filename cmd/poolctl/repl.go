package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/flier/memarena/arena"
)

const replHelp = `commands:
  alloc <n>       allocate n bytes, print its address
  free <addr>     free a previously allocated address (hex, e.g. 0x40)
  stats           print accounting and free-list summary
  layout          dump the block chain
  validate        check internal invariants
  debug           toggle verbose per-operation logging
  test            run the built-in self-test
  help            show this message
  quit, exit      leave the REPL
`

// runREPL drives an interactive session against a, reading commands from
// stdin until quit/exit or EOF.
func runREPL(a *arena.Arena, logger *zap.Logger) {
	fmt.Println(replHelp)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", a.Name())
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd := fields[0]
		rest := fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			fmt.Println(replHelp)
		case "alloc":
			replAlloc(a, rest)
		case "free":
			replFree(a, rest)
		case "stats":
			replStats(a)
		case "layout":
			fmt.Print(a.Dump())
		case "validate":
			if err := a.Validate(); err != nil {
				fmt.Println("invalid:", err)
			} else {
				fmt.Println("ok")
			}
		case "debug":
			a.SetDebug(!a.Debug())
			fmt.Printf("debug logging: %v\n", a.Debug())
		case "test":
			runSelfTest(a, logger)
		default:
			fmt.Printf("unknown command %q; try 'help'\n", cmd)
		}
	}
}

func replAlloc(a *arena.Arena, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: alloc <n>")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("not a number:", args[0])
		return
	}

	addr, err := a.Alloc(n)
	if err != nil {
		fmt.Println("alloc failed:", err)
		return
	}

	fmt.Printf("allocated %d bytes at 0x%x\n", n, addr)
}

func replFree(a *arena.Arena, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: free <addr>")
		return
	}

	addr, err := strconv.ParseInt(strings.TrimPrefix(args[0], "0x"), 16, 64)
	if err != nil {
		fmt.Println("not a hex address:", args[0])
		return
	}

	if err := a.Free(addr); err != nil {
		fmt.Println("free failed:", err)
		return
	}

	fmt.Println("freed")
}

func replStats(a *arena.Arena) {
	s := a.Stats()
	fmt.Printf("used=%d peak=%d allocs=%d frees=%d blocks=%d free_blocks=%d largest_free=%d frag=%.2f%%\n",
		s.UsedBytes, s.PeakUsedBytes, s.AllocationCount, s.DeallocationCount,
		s.BlockCount, s.FreeBlockTotal(), a.LargestFreeBlock(), a.FragmentationRatio())
}
