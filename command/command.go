// Package command implements the reversible mutations of the page assembly
// engine: a closed set of command variants with exact inverse semantics,
// batch composition, and a durable JSON wire form with versioned envelopes.
//
// Commands mutate a document.Document directly. Construction validates
// arguments and fails early; Execute and Undo never fail because every
// document primitive is total. A command is built once, executed by the
// history stack, and may then be undone and re-executed arbitrarily often.
// Redo idempotence for id-generating commands is guaranteed by minting all
// ids at construction time and persisting them in the payload.
package command

import (
	"time"

	"github.com/wudi/pdfdeck/document"
)

// Command is one named, serializable unit of mutation.
type Command interface {
	// ID is stable for the lifetime of the command, across serialization.
	ID() string
	// Label is the human-readable description shown in undo menus.
	Label() string
	// SetLabel overrides the default label for this instance.
	SetLabel(label string)
	// CreatedAt is the construction time in epoch milliseconds. Display
	// only; the history pointer is the ordering authority.
	CreatedAt() int64
	// Execute applies the mutation. Called once when the command enters
	// the history stack and again on every redo.
	Execute()
	// Undo exactly reverses the most recent Execute, restoring structural
	// position, not just presence.
	Undo()
}

// Stable wire type tags. These never change, independent of type names.
const (
	TypeAddPages        = "addPages"
	TypeDeletePages     = "deletePages"
	TypeDuplicatePages  = "duplicatePages"
	TypeReorderPages    = "reorderPages"
	TypeRotatePages     = "rotatePages"
	TypeResizePages     = "resizePages"
	TypeInsertDivider   = "insertDivider"
	TypeRemoveSource    = "removeSource"
	TypeAddRedaction    = "addRedaction"
	TypeUpdateRedaction = "updateRedaction"
	TypeDeleteRedaction = "deleteRedaction"
	TypeUpdateOutline   = "updateOutline"
	TypeBatch           = "batch"
)

// meta carries the identity fields shared by every variant.
type meta struct {
	id        string
	label     string
	createdAt int64
}

func newMeta(label string) meta {
	return meta{id: document.NewID(), label: label, createdAt: time.Now().UnixMilli()}
}

// restoredMeta rebuilds identity from a persisted payload.
func restoredMeta(id, label string, createdAt int64) meta {
	return meta{id: id, label: label, createdAt: createdAt}
}

func (m *meta) ID() string            { return m.id }
func (m *meta) Label() string         { return m.label }
func (m *meta) SetLabel(label string) { m.label = label }
func (m *meta) CreatedAt() int64      { return m.createdAt }
