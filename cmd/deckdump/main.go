// deckdump inspects a persisted session snapshot: sources, page order,
// export segments and restorable history.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wudi/pdfdeck/command"
	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/history"
	"github.com/wudi/pdfdeck/observability"
	"github.com/wudi/pdfdeck/persist"
)

type options struct {
	path    string
	asJSON  bool
	verbose bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "deckdump: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "deckdump: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.StringVar(&opts.path, "in", "", "path to the snapshot file")
	flag.BoolVar(&opts.asJSON, "json", false, "dump the raw snapshot as JSON")
	flag.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flag.Parse()
	if opts.path == "" {
		return opts, fmt.Errorf("missing -in <snapshot>")
	}
	return opts, nil
}

func run(opts options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := observability.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := persist.NewFileStore(opts.path)
	if err != nil {
		return err
	}
	snap, err := store.Load(context.Background())
	if err != nil {
		return err
	}
	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	doc := document.New()
	persist.Restore(doc, snap)

	fmt.Printf("snapshot v%d, saved at %d\n\n", snap.Version, snap.SavedAt)

	fmt.Printf("sources (%d):\n", len(snap.Sources))
	for _, s := range doc.Sources() {
		kind := "pdf"
		if s.IsImageSource {
			kind = "image"
		}
		fmt.Printf("  %-36s  %-5s  %4d page(s)  %s\n", s.ID, kind, s.PageCount, s.Filename)
	}

	fmt.Printf("\npages (%d):\n", doc.Len())
	for i, e := range doc.Entries() {
		if e.IsDivider() {
			fmt.Printf("  %3d  ---- divider ----\n", i)
			continue
		}
		p := e.(*document.PageReference)
		fmt.Printf("  %3d  source %s page %d rot %d\n", i, p.SourceFileID, p.SourcePageIndex, p.Rotation)
	}

	segments := doc.Segments()
	fmt.Printf("\nexport segments: %d\n", len(segments))
	for i, seg := range segments {
		fmt.Printf("  segment %d: %d page(s)\n", i, len(seg))
	}

	stack := history.New(history.Config{Logger: log})
	stack.Rehydrate(command.NewRegistry(log), doc, snap.History, snap.Pointer)
	fmt.Printf("\nhistory: %d of %d entries restorable, pointer %d\n", stack.Len(), len(snap.History), stack.Pointer())
	for i, label := range stack.Labels() {
		marker := " "
		if i == stack.Pointer() {
			marker = ">"
		}
		fmt.Printf("  %s %3d  %s\n", marker, i, label)
	}
	return nil
}
