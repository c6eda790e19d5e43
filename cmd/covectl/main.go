// Command covectl is Cove's interactive debug console. It loads the
// last registry snapshot cove saved and lets an operator browse known
// devices from a readline-driven REPL, without needing a running
// cove process or any RPC transport (deliberately out of scope here,
// per rpc.Surface's design).
//
// Usage:
//
//	covectl [flags]
//
// Flags:
//
//	-db-path string  Registry snapshot file to load (default $COVE_DB_PATH or "cove-state.json")
//
// Commands:
//
//	devices            List every device in the loaded snapshot
//	version            Print the surface version
//	send <message>     Echo message through the configured Commander
//	logs <path> [n]    Print the last n (default 20) events from a
//	                   protocol log file written by `cove -protocol-log`
//	help               Show this command list
//	quit               Exit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/covehub/cove/pkg/bus"
	"github.com/covehub/cove/pkg/log"
	"github.com/covehub/cove/pkg/persistence"
	"github.com/covehub/cove/pkg/registry"
	"github.com/covehub/cove/pkg/rpc"
)

func main() {
	defaultPath := os.Getenv("COVE_DB_PATH")
	if defaultPath == "" {
		defaultPath = "cove-state.json"
	}

	var dbPath string
	flag.StringVar(&dbPath, "db-path", defaultPath, "Registry snapshot file to load")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store := persistence.NewFileStore(dbPath)
	snapshot, err := store.Load()
	if err != nil {
		logger.Error("failed to load snapshot", "path", dbPath, "error", err)
		os.Exit(1)
	}

	// A Registry normally consumes live bus events; here it is used
	// purely as a Seed-and-read snapshot holder, so the bus it is
	// constructed with is never published on and Run is never started.
	reg := registry.New(bus.New(logger), logger)
	reg.Seed(snapshot.Devices)

	surface := rpc.NewSurface(reg, nil)
	fmt.Printf("covectl %s -- loaded %d device(s) from %s\n", surface.Version(), len(snapshot.Devices), dbPath)

	if err := runREPL(surface); err != nil {
		logger.Error("repl error", "error", err)
		os.Exit(1)
	}
}

func runREPL(surface *rpc.Surface) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cove> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help", "?":
			printHelp()
		case "devices", "ls":
			printDevices(surface.Devices())
		case "version":
			fmt.Println(surface.Version())
		case "send":
			fmt.Println(surface.SendMsg(strings.Join(args, " ")))
		case "logs":
			if err := printLogs(args); err != nil {
				fmt.Println("error:", err)
			}
		case "quit", "exit", "q":
			return nil
		default:
			fmt.Printf("unknown command: %s (type 'help')\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  devices, ls          List known devices
  version              Print surface version
  send <message>       Echo message through the configured commander
  logs <path> [n]      Print the last n (default 20) events from a protocol log file
  help, ?              Show this list
  quit, exit, q        Exit`)
}

// printLogs reads a protocol log file written by `cove -protocol-log`
// and prints its last n events (default 20), the one operator-facing
// use for log.Reader/log.Event now that frame-level detail lives on
// disk instead of only ever flowing through slog.
func printLogs(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: logs <path> [n]")
	}
	path := args[0]

	n := 20
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[1], err)
		}
		n = parsed
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		events = append(events, event)
		if len(events) > n {
			events = events[1:]
		}
	}

	if len(events) == 0 {
		fmt.Println("(no events)")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%s %-5s %-10s %-8s conn=%s device=%s\n",
			e.Timestamp.Format("2006-01-02T15:04:05Z07:00"), e.Direction, e.Layer, e.Category, e.ConnectionID, e.DeviceID)
	}
	return nil
}

func printDevices(devices []registry.Device) {
	if len(devices) == 0 {
		fmt.Println("(no devices known)")
		return
	}
	for _, d := range devices {
		fmt.Printf("%-24s kind=%-10s type=%-20s capabilities=%-3d last_seen=%s\n",
			d.ID, d.Kind, d.DeviceType, len(d.Capabilities), d.LastSeen.Format("2006-01-02T15:04:05Z07:00"))
	}
}
