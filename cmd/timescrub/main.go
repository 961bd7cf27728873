// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/timescrub/main.go
// Summary: Demo host: loads a slices feed and mounts the timeline scrubber
// next to a scrollable entry list.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/timeslices/timescrub/catalog"
	"github.com/timeslices/timescrub/config"
	"github.com/timeslices/timescrub/defaults"
)

func main() {
	configPath := flag.String("config", "timescrub.json", "path to config file")
	slicesPath := flag.String("slices", "", "path to slices feed (overrides config)")
	dbPath := flag.String("db", "", "import the feed into a catalog db and load from it")
	themeName := flag.String("theme", "", "theme name (overrides config)")
	logPath := flag.String("log", "timescrub.log", "path to log file")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("timescrub starting...")

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "timescrub needs a terminal")
		os.Exit(1)
	}

	cfg := config.Load(*configPath)
	if *slicesPath != "" {
		cfg.SlicesPath = *slicesPath
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}

	slices, err := loadSlices(cfg.SlicesPath, *dbPath)
	if err != nil {
		log.Printf("Main: %v", err)
		fmt.Fprintf(os.Stderr, "failed to load slices: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Main: loaded %d slices from %s", len(slices), cfg.SlicesPath)

	app, err := NewApp(cfg, slices)
	if err != nil {
		log.Printf("Main: %v", err)
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		log.Fatalf("Main: application exited with error: %v", err)
	}
	log.Println("timescrub stopped cleanly.")
}

// loadSlices reads the feed, falling back to the embedded starter feed when
// no file exists, optionally round-tripping through a catalog db so repeated
// runs work against the imported copy.
func loadSlices(feedPath, dbPath string) ([]catalog.Slice, error) {
	slices, err := catalog.LoadFile(feedPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Main: %s not found, using embedded starter feed", feedPath)
		data, derr := defaults.Slices()
		if derr != nil {
			return nil, derr
		}
		slices, err = catalog.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		return slices, nil
	}
	store, err := catalog.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.Import(slices); err != nil {
		return nil, err
	}
	return store.All()
}
