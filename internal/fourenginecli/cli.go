// Package fourenginecli implements the external command surface of
// spec.md §6 / spec_full.md §7: "solve", "test", "generate-book", and
// the default "interactive" stdin loop.
//
// Grounded on the teacher's cmd/chessplay-uci/main.go (flag parsing,
// log.Fatal on setup failure) and internal/uci.Run (a bufio.Scanner
// reading stdin, dispatched through a switch on the first
// whitespace-delimited token).
package fourenginecli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hailam/fourengine/internal/book"
	"github.com/hailam/fourengine/internal/bookgen"
	"github.com/hailam/fourengine/internal/bookstore"
	"github.com/hailam/fourengine/internal/engine"
	"github.com/hailam/fourengine/internal/tt"
	"github.com/hailam/fourengine/internal/variation"
)

// Run dispatches argv (excluding the program name) to a subcommand.
// stdout/stderr are the streams subcommands print to; stdin feeds
// interactive mode.
func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return runInteractive(nil, stdin, stdout, stderr)
	}

	switch argv[0] {
	case "solve":
		return runSolve(argv[1:], stdout, stderr)
	case "test":
		return runTest(argv[1:], stdout, stderr)
	case "generate-book":
		return runGenerateBook(argv[1:], stdout, stderr)
	case "interactive":
		return runInteractive(argv[1:], stdin, stdout, stderr)
	default:
		return runInteractive(argv, stdin, stdout, stderr)
	}
}

func runSolve(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bookPath := fs.String("book", "", "opening book file to load")
	bookPly := fs.Int("book-ply", 0, "ply the book file was generated for")
	ttBits := fs.Int("tt-bits", tt.DefaultSizeBits, "log2 of the transposition table entry count")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("solve: expected a variation argument")
	}

	e := engine.New(*ttBits)
	if *bookPath != "" {
		b, err := book.LoadMulti([]book.Source{{Path: *bookPath, Ply: *bookPly}})
		if err != nil {
			return err
		}
		e.SetBook(b)
	}

	sol, err := e.Solve(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "score %d, %s nodes, %.0f nodes/sec\n",
		sol.Score, humanize.Comma(int64(sol.WorkCount)), sol.NPS())
	return nil
}

func runTest(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bookPath := fs.String("book", "", "opening book file to load")
	bookPly := fs.Int("book-ply", 0, "ply the book file was generated for")
	ttBits := fs.Int("tt-bits", tt.DefaultSizeBits, "log2 of the transposition table entry count")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("test: expected a test-set file path")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	cases, err := variation.ReadTestSet(f)
	if err != nil {
		return err
	}

	e := engine.New(*ttBits)
	if *bookPath != "" {
		b, err := book.LoadMulti([]book.Source{{Path: *bookPath, Ply: *bookPly}})
		if err != nil {
			return err
		}
		e.SetBook(b)
	}

	failed := 0
	for _, c := range cases {
		sol, err := e.Solve(c.Variation)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %-20s error: %v\n", c.Variation, err)
			failed++
			continue
		}
		if int(sol.Score) != c.Want {
			fmt.Fprintf(stdout, "FAIL %-20s got %d, want %d\n", c.Variation, sol.Score, c.Want)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok   %-20s score %d\n", c.Variation, sol.Score)
	}
	fmt.Fprintf(stdout, "%d/%d passed\n", len(cases)-failed, len(cases))
	if failed > 0 {
		return fmt.Errorf("test: %d of %d cases failed", failed, len(cases))
	}
	return nil
}

func runGenerateBook(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("generate-book", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ply := fs.Int("ply", 8, "target ply to enumerate positions at")
	out := fs.String("out", "", "output file (default: stdout)")
	diskDedup := fs.String("disk-dedup", "", "directory for a badger-backed dedup set (default: in-memory)")
	ttBits := fs.Int("tt-bits", tt.DefaultSizeBits, "log2 of the transposition table entry count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var visited bookgen.VisitedSet
	if *diskDedup != "" {
		store, err := bookstore.Open(*diskDedup)
		if err != nil {
			return fmt.Errorf("opening dedup store: %w", err)
		}
		defer store.Close()
		visited = store
	}

	e := engine.New(*ttBits)
	b := bookgen.Generate(*ply, e, visited)

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := b.WriteTo(f); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "wrote %d entries to %s\n", b.Size(), *out)
		return nil
	}
	if err := b.WriteTo(w); err != nil {
		return err
	}
	return nil
}

func runInteractive(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noBook := fs.Bool("no-book", false, "disable automatic book loading")
	bookPath := fs.String("book", "", "opening book file to load")
	bookPly := fs.Int("book-ply", 0, "ply the book file was generated for")
	book2Path := fs.String("book2", "", "second opening book file to load (spec_full.md §10)")
	book2Ply := fs.Int("book2-ply", 0, "ply the second book file was generated for")
	ttBits := fs.Int("tt-bits", tt.DefaultSizeBits, "log2 of the transposition table entry count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := engine.New(*ttBits)
	if !*noBook && *bookPath != "" {
		sources := []book.Source{{Path: *bookPath, Ply: *bookPly}}
		if *book2Path != "" {
			sources = append(sources, book.Source{Path: *book2Path, Ply: *book2Ply})
		}
		b, err := book.LoadMulti(sources)
		if err != nil {
			// Book load failures degrade to "no book", never abort the
			// session (spec.md §7).
			fmt.Fprintf(stderr, "warning: %v (continuing without a book)\n", err)
		} else {
			e.SetBook(b)
		}
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		sol, err := e.Solve(line)
		if err != nil {
			fmt.Fprintf(stdout, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(stdout, "score %d, %s nodes\n", sol.Score, humanize.Comma(int64(sol.WorkCount)))
	}
	return scanner.Err()
}
