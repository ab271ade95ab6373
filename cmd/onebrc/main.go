package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/profile"

	"github.com/nbukhari/onebrc"
	"github.com/nbukhari/onebrc/internal/format"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// profileMode maps a -profile value to a pkg/profile option.
func profileMode(name string) (func(*profile.Profile), error) {
	switch strings.ToLower(name) {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "clock":
		return profile.ClockProfile, nil
	case "block":
		return profile.BlockProfile, nil
	case "mutex":
		return profile.MutexProfile, nil
	case "trace":
		return profile.TraceProfile, nil
	case "goroutine":
		return profile.GoroutineProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", name)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("onebrc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	impl := fs.String("impl", "parallel", "solution to run: "+strings.Join(onebrc.Names(), ", "))
	workers := fs.Int("workers", 0, "scanner count (0 = GOMAXPROCS)")
	order := fs.String("order", "sorted", "output key order: sorted or encounter")
	tree := fs.Bool("tree", false, "merge partial results pairwise in parallel")
	out := fs.String("o", "", "write the result to this file instead of stdout")
	prof := fs.String("profile", "", "profile mode: cpu, mem, clock, block, mutex, trace, goroutine")
	profDir := fs.String("profile-dir", "./profile", "directory for profile output")
	verbose := fs.Bool("v", false, "log stage timings")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: onebrc [flags] <measurements.txt>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	logger := log.New(stderr, "", log.LstdFlags)

	// parse env vars and inputs
	if os.Getenv("PROFILE") == "true" && *prof == "" {
		*prof = "cpu"
	}
	if *prof != "" {
		mode, err := profileMode(*prof)
		if err != nil {
			logger.Print(err)
			return 2
		}
		defer profile.Start(mode, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	}

	ord, err := format.ParseOrder(*order)
	if err != nil {
		logger.Print(err)
		return 2
	}
	opts := onebrc.Options{Workers: *workers, Order: ord, TreeMerge: *tree}
	if *verbose {
		opts.Logger = logger
	}
	sol, err := onebrc.Lookup(*impl, opts)
	if err != nil {
		logger.Print(err)
		return 2
	}

	start := time.Now()
	res, err := sol.Process(fs.Arg(0))
	if err != nil {
		logger.Printf("processing error: %v", err)
		return 1
	}
	if err := emit(*out, stdout, onebrc.Format(res, ord)); err != nil {
		logger.Printf("write result: %v", err)
		return 1
	}
	elapsed := time.Since(start)
	logger.Printf("Time took %s", elapsed)
	return 0
}

// emit writes the result followed by a newline to path, or to stdout when
// path is empty. A file is written next to path and renamed into place, so a
// failed write never leaves a truncated result behind.
func emit(path string, stdout io.Writer, text string) error {
	if path == "" {
		writer := bufio.NewWriter(stdout)
		fmt.Fprintln(writer, text)
		return writer.Flush()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := writeFile(f, text); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// writeFile writes text to f, syncs and closes it. f is closed on every path.
func writeFile(f *os.File, text string) error {
	err := f.Chmod(0o644)
	if err == nil {
		writer := bufio.NewWriter(f)
		fmt.Fprintln(writer, text)
		err = writer.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
