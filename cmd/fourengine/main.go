// Command fourengine is the CLI front end for the solver: "solve",
// "test", "generate-book", and the default "interactive" stdin loop
// (spec_full.md §7).
//
// Grounded on the teacher's cmd/chessplay-uci/main.go: a thin main()
// that parses the profiling flag, wires up pprof, and hands off to the
// protocol/command layer.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/fourengine/internal/fourenginecli"
)

var cpuprofile = flag.String("cpuprofile", "", "write a CPU profile to file")

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := fourenginecli.Run(flag.Args(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}
