package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	units "github.com/docker/go-units"
	"go.uber.org/zap"
	"golang.org/x/term"

	wasmbind "github.com/wippyai/wasm-bind"
	"github.com/wippyai/wasm-bind/accounting"
	"github.com/wippyai/wasm-bind/factory"
	"github.com/wippyai/wasm-bind/runtime"
)

// counter is the demo value type. Its static size is 8 bytes.
type counter struct {
	value int64
}

func newCounter(start int64) counter {
	return counter{value: start}
}

const counterType = 1

func main() {
	var (
		modeName    = flag.String("mode", "owned", "Ownership mode: owned or shared")
		count       = flag.Int("n", 4, "Number of objects to create")
		limit       = flag.Int64("limit", 0, "External memory soft limit in bytes (0 disables)")
		trace       = flag.Bool("trace", false, "Print every accounting delta")
		verbose     = flag.Bool("v", false, "Development logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	mode, ok := factory.ParseMode(*modeName)
	if !ok || *count < 0 {
		fmt.Fprintln(os.Stderr, "Usage: objdemo [-mode owned|shared] [-n count] [-limit bytes] [-trace] [-v]")
		fmt.Fprintln(os.Stderr, "       objdemo -i [-mode owned|shared] [-limit bytes]  (interactive mode)")
		os.Exit(1)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	factory.SetLogger(log)
	runtime.SetLogger(log)

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(mode, *limit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(mode, *count, *limit, *trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(mode factory.Mode, count int, limit int64, trace bool) error {
	ctx := context.Background()

	iso, err := runtime.New(ctx, &runtime.Config{
		ExternalMemoryLimit: limit,
		OnMemoryPressure: func(total int64) {
			fmt.Printf("memory pressure: %s above limit %s\n", units.BytesSize(float64(total)), units.BytesSize(float64(limit)))
		},
	})
	if err != nil {
		return fmt.Errorf("create isolate: %w", err)
	}
	defer iso.Close(ctx)

	var acc wasmbind.Accountant = iso
	var rec *accounting.Recorder
	if trace {
		rec = accounting.NewRecorder(iso)
		acc = rec
	}

	fmt.Printf("Isolate: %s\n", iso.ID())
	fmt.Printf("Mode: %s (object size %d bytes)\n\n", mode, factory.ObjectSize[counter]())

	switch mode {
	case factory.ModeOwned:
		err = exercise[*counter](factory.NewOwned(factory.Infallible(newCounter)), acc, iso, count)
	case factory.ModeShared:
		err = exercise[*factory.Ref[counter]](factory.NewShared(factory.Infallible(newCounter)), acc, iso, count)
	}
	if err != nil {
		return err
	}

	if rec != nil {
		deltas := rec.Deltas()
		parts := make([]string, len(deltas))
		for i, d := range deltas {
			parts[i] = fmt.Sprintf("%+d", d)
		}
		fmt.Printf("\nAccounting trace (%d calls): %s\n", len(deltas), strings.Join(parts, " "))
	}

	stats := iso.Stats()
	fmt.Printf("Peak external memory: %s\n", units.BytesSize(float64(stats.Peak)))
	return nil
}

// exercise creates count objects through p, then destroys them, printing
// the isolate's view of external memory after each phase.
func exercise[H any](p factory.Policy[counter, int64, H], acc wasmbind.Accountant, iso *runtime.Isolate, count int) error {
	handles := make([]H, 0, count)
	for i := 0; i < count; i++ {
		h, err := p.Create(acc, int64(i))
		if err != nil {
			return fmt.Errorf("create object %d: %w", i, err)
		}
		handles = append(handles, h)
	}
	fmt.Printf("Created %d objects:   external memory %s\n", count, units.BytesSize(float64(iso.ExternalMemory())))

	for _, h := range handles {
		factory.Dispose[counter, int64, H](p, acc, h)
	}
	fmt.Printf("Destroyed %d objects: external memory %s\n", count, units.BytesSize(float64(iso.ExternalMemory())))
	return nil
}
