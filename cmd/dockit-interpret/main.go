// Command dockit-interpret runs the free-text interpretation pipeline
// against the embedded task mappings and labor time table and prints
// the result as JSON. Useful for checking what a job summary maps to
// without starting the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"dockit/internal/core/catalog"
	"dockit/internal/core/interpret"
	"dockit/internal/platform/logger"
	"dockit/internal/services/atl"
	"dockit/internal/services/curation"
)

func main() {
	mappingsDir := flag.String("mappings", "", "extra task mapping directory merged over the embedded set")
	atlFile := flag.String("atl", "", "labor time CSV overriding the embedded table")
	dataDir := flag.String("data", "", "data directory for curation event files (disabled when empty)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] \"beskrivning av jobb\"\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger.Init(logger.FromEnv())
	l := logger.Get()

	var (
		cat *catalog.Catalog
		err error
	)
	if *mappingsDir != "" {
		cat, err = catalog.LoadDir(*mappingsDir)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		l.Panic().Err(err).Msg("loading task mappings failed")
	}

	var times *atl.Index
	if *atlFile != "" {
		times, err = atl.LoadFile(*atlFile)
	} else {
		times, err = atl.Load()
	}
	if err != nil {
		l.Panic().Err(err).Msg("loading labor time table failed")
	}

	interp := interpret.New(cat, times, curation.NewSink(*dataDir))
	res := interp.Interpret(context.Background(), text)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		l.Panic().Err(err).Msg("encoding result failed")
	}
	fmt.Println(string(out))
}
