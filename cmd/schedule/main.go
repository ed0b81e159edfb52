// Command schedule's solve subcommand takes two positional arguments, a
// rooms file and a courses file, and exits 0 on a decoded timetable, 2 on an infeasible
// problem, 3 on an unknown solver outcome, and 1 on any input error.
package main

import (
	"log"
	"math/rand"
	"os"
	"time"
)

func main() {
	rand.Seed(time.Now().UnixNano())
	log.SetFlags(log.Ltime)

	if err := newRootCommand().Execute(); err != nil {
		log.Printf("%v", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
