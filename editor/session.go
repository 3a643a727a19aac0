// Package editor ties one document, its history stack and its persistence
// sink into a session handle. Sessions are explicit objects, never global
// state, so multiple independent documents can be edited side by side.
//
// Every intent method constructs the matching command, hands it to the
// history stack, and schedules a debounced save. Construction errors
// surface here and never reach the stack.
package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/wudi/pdfdeck/command"
	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/history"
	"github.com/wudi/pdfdeck/observability"
	"github.com/wudi/pdfdeck/persist"
)

type Options struct {
	// Store enables persistence; nil disables it.
	Store persist.Store
	// Debounce overrides the save debounce window.
	Debounce   time.Duration
	HistoryCap int
	Logger     observability.Logger
}

type Session struct {
	doc   *document.Document
	hist  *history.Stack
	reg   *command.Registry
	saver *persist.Saver
	log   observability.Logger
}

func NewSession(opts Options) *Session {
	log := observability.OrNop(opts.Logger)
	s := &Session{
		doc:  document.New(),
		hist: history.New(history.Config{Cap: opts.HistoryCap, Logger: log}),
		reg:  command.NewRegistry(log),
		log:  log,
	}
	if opts.Store != nil {
		s.saver = persist.NewSaver(persist.SaverConfig{
			Store:    opts.Store,
			Take:     s.Snapshot,
			Debounce: opts.Debounce,
			Logger:   log,
		})
	}
	return s
}

// LoadSession restores a session from a persisted snapshot. The document is
// materialized from the snapshot's page list and source map; history is
// rehydrated without re-executing anything.
func LoadSession(ctx context.Context, store persist.Store, opts Options) (*Session, error) {
	if store == nil {
		return nil, fmt.Errorf("load session: nil store")
	}
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	opts.Store = store
	s := NewSession(opts)
	persist.Restore(s.doc, snap)
	s.hist.Rehydrate(s.reg, s.doc, snap.History, snap.Pointer)
	s.log.Info("session restored",
		observability.Int("pages", s.doc.Len()),
		observability.Int("history", s.hist.Len()))
	return s, nil
}

func (s *Session) Document() *document.Document { return s.doc }
func (s *Session) History() *history.Stack      { return s.hist }
func (s *Session) Registry() *command.Registry  { return s.reg }

// run pushes a freshly constructed command and schedules a save.
func (s *Session) run(cmd command.Command) {
	s.hist.Execute(cmd)
	s.scheduleSave()
}

func (s *Session) scheduleSave() {
	if s.saver != nil {
		s.saver.Schedule()
	}
}

// ImportSource registers a source and appends its pages in one history
// entry.
func (s *Session) ImportSource(src *document.SourceFile, pages []*document.PageReference) error {
	cmd, err := command.NewAddPages(s.doc, src, pages, -1)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

// AddPages inserts pages for an already-known or new source at index; -1
// appends.
func (s *Session) AddPages(src *document.SourceFile, pages []*document.PageReference, index int) error {
	cmd, err := command.NewAddPages(s.doc, src, pages, index)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

func (s *Session) DeletePages(pageIDs []string) error {
	cmd, err := command.NewDeletePages(s.doc, pageIDs)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

// DuplicatePages duplicates the targets in place and returns the ids of the
// copies in the original relative order.
func (s *Session) DuplicatePages(pageIDs []string) ([]string, error) {
	cmd, err := command.NewDuplicatePages(s.doc, pageIDs)
	if err != nil {
		return nil, err
	}
	s.run(cmd)
	return cmd.InsertedIDs(), nil
}

// Reorder replaces the whole page order. newOrder must be a permutation of
// the current entries.
func (s *Session) Reorder(newOrder []document.PageEntry) error {
	cmd, err := command.NewReorderPages(s.doc, s.doc.Entries(), newOrder)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

// ReorderByIDs replaces the page order by id list. ids must name every
// current entry exactly once.
func (s *Session) ReorderByIDs(pageIDs []string) error {
	entries := s.doc.Entries()
	if len(pageIDs) != len(entries) {
		return fmt.Errorf("reorder: %d ids for %d entries", len(pageIDs), len(entries))
	}
	next := make([]document.PageEntry, len(pageIDs))
	for i, id := range pageIDs {
		idx := s.doc.IndexOf(id)
		if idx < 0 {
			return fmt.Errorf("reorder: unknown entry %s", id)
		}
		next[i] = entries[idx]
	}
	return s.Reorder(next)
}

// MovePage moves one entry to a target index. Like every reordering
// strategy, it reduces to computing the new full order.
func (s *Session) MovePage(pageID string, to int) error {
	from := s.doc.IndexOf(pageID)
	if from < 0 {
		return fmt.Errorf("move page: unknown page %s", pageID)
	}
	entries := s.doc.Entries()
	if to < 0 || to >= len(entries) {
		return fmt.Errorf("move page: index %d out of range", to)
	}
	moved := entries[from]
	rest := append(append([]document.PageEntry(nil), entries[:from]...), entries[from+1:]...)
	next := append(append(append([]document.PageEntry(nil), rest[:to]...), moved), rest[to:]...)
	return s.Reorder(next)
}

func (s *Session) RotatePages(pageIDs []string, degrees int) error {
	cmd, err := command.NewRotatePages(s.doc, pageIDs, degrees)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

func (s *Session) ResizePages(pageIDs []string, dims *document.Dimensions) error {
	cmd, err := command.NewResizePages(s.doc, pageIDs, dims)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

// InsertDivider splits the export at index and returns the divider's id.
func (s *Session) InsertDivider(index int) (string, error) {
	cmd, err := command.NewInsertDivider(s.doc, index)
	if err != nil {
		return "", err
	}
	s.run(cmd)
	return cmd.DividerID(), nil
}

func (s *Session) RemoveSource(sourceID string) error {
	cmd, err := command.NewRemoveSource(s.doc, sourceID)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

func (s *Session) AddRedaction(pageID string, mark document.RedactionMark) error {
	cmd, err := command.NewAddRedaction(s.doc, pageID, mark)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

func (s *Session) UpdateRedaction(pageID string, mark document.RedactionMark) error {
	cmd, err := command.NewUpdateRedaction(s.doc, pageID, mark)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

func (s *Session) DeleteRedaction(pageID, markID string) error {
	cmd, err := command.NewDeleteRedaction(s.doc, pageID, markID)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

func (s *Session) SetOutline(items []document.OutlineItem, dirty bool) error {
	cmd, err := command.NewUpdateOutline(s.doc, items, dirty)
	if err != nil {
		return err
	}
	s.run(cmd)
	return nil
}

// ExecuteBatch runs pre-built commands as one atomic history entry.
func (s *Session) ExecuteBatch(label string, cmds []command.Command) error {
	batch, err := command.NewBatch(label, cmds)
	if err != nil {
		return err
	}
	s.run(batch)
	return nil
}

func (s *Session) Undo() bool {
	ok := s.hist.Undo()
	if ok {
		s.scheduleSave()
	}
	return ok
}

func (s *Session) Redo() bool {
	ok := s.hist.Redo()
	if ok {
		s.scheduleSave()
	}
	return ok
}

func (s *Session) JumpTo(target int) {
	s.hist.JumpTo(target)
	s.scheduleSave()
}

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// PageIDs returns the ids of all page list entries, dividers included, in
// export order.
func (s *Session) PageIDs() []string {
	entries := s.doc.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.EntryID()
	}
	return out
}

// Alert surfaces a message from an automation script.
func (s *Session) Alert(message string) {
	s.log.Info("script alert", observability.String("message", message))
}

// Snapshot captures the full persistable state of the session.
func (s *Session) Snapshot() *persist.Snapshot {
	envs, pointer := s.hist.Serialize()
	return persist.Capture(s.doc, envs, pointer, time.Now().UnixMilli())
}

// Save writes a snapshot immediately, bypassing the debounce window.
func (s *Session) Save(ctx context.Context) error {
	if s.saver == nil {
		return fmt.Errorf("save: session has no store")
	}
	return s.saver.Flush(ctx)
}

// Close stops the pending save timer and waits for in-flight writes.
func (s *Session) Close() {
	if s.saver != nil {
		s.saver.Close()
	}
}
