package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/inkpad-app/inkpad"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	orphans := flag.Int("orphans", 100, "Number of orphaned assets to plant")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "inkpad_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Direct file writes simulate an existing data directory, so the load
	// path is measured cold.
	notesDir := filepath.Join(benchDir, "notes")
	imagesDir := filepath.Join(benchDir, "images")
	for _, dir := range []string{notesDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}

	now := time.Now().UnixMilli()
	for i := 0; i < *count; i++ {
		id := fmt.Sprintf("note_%d", i)
		doc, err := json.Marshal(inkpad.Note{
			ID:        id,
			Title:     fmt.Sprintf("Benchmark Note %d", i),
			Content:   fmt.Sprintf("This is benchmark note %d.", i),
			Type:      inkpad.TypeText,
			CreatedAt: now,
			UpdatedAt: now + int64(i),
		})
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(filepath.Join(notesDir, id+".json"), doc, 0o644); err != nil {
			panic(err)
		}
	}
	for i := 0; i < *orphans; i++ {
		name := filepath.Join(imagesDir, fmt.Sprintf("orphan_%d.png", i))
		if err := os.WriteFile(name, []byte("blob"), 0o644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	// Measure cold startup: backend init, folder store, full note load.
	startLoad := time.Now()
	app, err := inkpad.New(ctx,
		inkpad.WithDataDir(benchDir),
		inkpad.WithLogger(logger),
		inkpad.WithoutGC(),
	)
	if err != nil {
		panic(err)
	}
	defer app.Close()
	fmt.Printf("Load of %d notes took: %v\n", len(app.Collection.Notes()), time.Since(startLoad))

	// Measure a full GC pass over the planted orphans.
	startGC := time.Now()
	report, err := app.Collection.GC(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("GC pass took: %v (scanned %d, deleted %d orphans)\n",
		time.Since(startGC), report.Scanned, report.Deleted)
}
