// Package interactive provides the interactive command-line interface
// for fairing-sim.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/kwcargobay/fairing-go/internal/sim"
	"github.com/kwcargobay/fairing-go/pkg/fairing"
	"github.com/kwcargobay/fairing-go/pkg/persistence"
)

// Shell handles interactive mode for fairing-sim.
type Shell struct {
	sim   *sim.Simulator
	store *persistence.ReportStore
	rl    *readline.Instance
	out   io.Writer
}

// New creates an interactive shell. The simulator is attached later with
// Attach so that logging can be routed through the shell before the craft
// is loaded. store may be nil when no default report path is configured.
func New(store *persistence.ReportStore) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fairing> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("status"),
			readline.PcItem("parts"),
			readline.PcItem("decouple"),
			readline.PcItem("destroy"),
			readline.PcItem("report", readline.PcItem("clear")),
			readline.PcItem("diff"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{store: store, rl: rl, out: rl.Stdout()}, nil
}

// Attach sets the simulator the shell operates on.
func (s *Shell) Attach(sm *sim.Simulator) {
	s.sim = sm
	if sm == nil {
		return
	}
	for _, c := range sm.Controllers() {
		id := c.Part().ID()
		c.OnStateChange(func(oldState, newState fairing.State) {
			fmt.Fprintf(s.out, "[%s] %s -> %s\n", id, oldState, newState)
		})
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if quit := s.Exec(line); quit {
			cancel()
			return
		}
	}
}

// Exec runs a single command line and reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "status", "s":
		PrintStatus(s.out, s.sim.Report())

	case "parts", "p":
		PrintParts(s.out, s.sim.Report())

	case "decouple", "d":
		s.cmdPartAction(args, "decouple", s.sim.Decouple)

	case "destroy", "x":
		s.cmdPartAction(args, "destroy", s.sim.DestroyPart)

	case "report", "r":
		s.cmdReport(args)

	case "diff":
		s.cmdDiff(args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) cmdPartAction(args []string, name string, action func(string) error) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Usage: %s <part-id> [part-id...]\n", name)
		return
	}
	for _, id := range args {
		if err := action(id); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "%s %s: ok\n", name, id)
	}
}

// storeFor returns the store at path, or the configured one when path is
// empty. It prints usage and returns nil when neither exists.
func (s *Shell) storeFor(cmd string, args []string) *persistence.ReportStore {
	if len(args) > 0 {
		return persistence.NewReportStore(args[0])
	}
	if s.store == nil {
		fmt.Fprintf(s.out, "Usage: %s <path> (no -report path configured)\n", cmd)
	}
	return s.store
}

func (s *Shell) cmdReport(args []string) {
	if len(args) > 0 && args[0] == "clear" {
		store := s.storeFor("report clear", args[1:])
		if store == nil {
			return
		}
		if err := store.Clear(); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(s.out, "Report %s removed\n", store.Path())
		return
	}

	store := s.storeFor("report", args)
	if store == nil {
		return
	}
	if err := store.Save(s.sim.Report()); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Report written to %s\n", store.Path())
}

func (s *Shell) cmdDiff(args []string) {
	store := s.storeFor("diff", args)
	if store == nil {
		return
	}
	prev, err := store.Load()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if prev == nil {
		fmt.Fprintf(s.out, "No report at %s\n", store.Path())
		return
	}
	fmt.Fprintf(s.out, "Changes since %s:\n", prev.SavedAt.Format(time.RFC3339))
	PrintChanges(s.out, persistence.CompareShielding(prev, s.sim.Report()))
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Fairing Simulator Commands:
  status              - Show fairing controller states
  parts               - List parts and their flags
  decouple <id...>    - Fire the decoupler of the given part(s)
  destroy <id...>     - Destroy the given part(s)
  report [path]       - Write a JSON run report
  report clear [path] - Remove a saved run report
  diff [path]         - Compare shielding with a saved run report
  help                - Show this help
  quit                - Exit simulator`)
}
