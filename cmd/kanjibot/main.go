// Command kanjibot runs the reddit dictionary bot. With --init-db it
// instead creates the database schema and imports the dictionary data,
// which is meant to be done once before the first bot run.
//
// Flags:
//
//	--init-db  create the schema and run the dictionary import
//	--phase    comma-separated import phases to run (radicals,kanji,words)
//	--dry-run  parse the source files without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vbalak/kanjibot/internal/adapter/postgres/importer"
	"github.com/vbalak/kanjibot/internal/app"
	"github.com/vbalak/kanjibot/internal/app/seeder"
)

// Compile-time interface assertion.
var _ seeder.ImportRepo = (*importer.Repo)(nil)

func main() {
	initDBFlag := flag.Bool("init-db", false, "create the schema and run the dictionary import")
	phaseFlag := flag.String("phase", "", "comma-separated import phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the source files without writing to DB")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *initDBFlag {
		var phases []string
		if *phaseFlag != "" {
			phases = strings.Split(*phaseFlag, ",")
			for i := range phases {
				phases[i] = strings.TrimSpace(phases[i])
			}
		}
		err = app.RunImport(ctx, phases, *dryRunFlag)
	} else {
		err = app.RunBot(ctx)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("kanjibot: %v", err)
	}
}
