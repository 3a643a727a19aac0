package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/wudi/pdfdeck/document"
)

// docState renders the full observable document state for comparison.
func docState(t *testing.T, doc *document.Document) string {
	t.Helper()
	pages, err := json.Marshal(document.EntryList(doc.Entries()))
	if err != nil {
		t.Fatalf("marshal pages: %v", err)
	}
	sources, err := json.Marshal(doc.Sources())
	if err != nil {
		t.Fatalf("marshal sources: %v", err)
	}
	outline, dirty := doc.Outline()
	ol, err := json.Marshal(outline)
	if err != nil {
		t.Fatalf("marshal outline: %v", err)
	}
	return fmt.Sprintf("%s|%s|%s|%v", pages, sources, ol, dirty)
}

// TestRoundTripBehavior verifies that deserialize(serialize(cmd)) yields a
// command whose execute/undo behavior is observably identical to the
// original, for every concrete variant.
func TestRoundTripBehavior(t *testing.T) {
	type variant struct {
		name  string
		setup func(t *testing.T) *document.Document
		make  func(t *testing.T, doc *document.Document) Command
	}

	plainSetup := func(t *testing.T) *document.Document { return testDoc(t, 4) }

	variants := []variant{
		{
			name:  TypeAddPages,
			setup: func(t *testing.T) *document.Document { return document.New() },
			make: func(t *testing.T, doc *document.Document) Command {
				src, pages := newImport("s1", 2)
				cmd, err := NewAddPages(doc, src, pages, -1)
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeDeletePages,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewDeletePages(doc, []string{"p1", "p3"})
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeDuplicatePages,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewDuplicatePages(doc, []string{"p0", "p2"})
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeReorderPages,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				prev := doc.Entries()
				next := []document.PageEntry{prev[3], prev[2], prev[1], prev[0]}
				cmd, err := NewReorderPages(doc, prev, next)
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeRotatePages,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewRotatePages(doc, []string{"p0", "p1"}, -90)
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name: TypeResizePages,
			setup: func(t *testing.T) *document.Document {
				doc := testDoc(t, 2)
				doc.SetTargetDimensions("p1", &dims595x842)
				return doc
			},
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewResizePages(doc, []string{"p0", "p1"}, &document.Dimensions{Width: 200, Height: 300})
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeInsertDivider,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewInsertDivider(doc, 2)
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeRemoveSource,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewRemoveSource(doc, "src")
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeAddRedaction,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewAddRedaction(doc, "p0", mark("r1"))
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name: TypeUpdateRedaction,
			setup: func(t *testing.T) *document.Document {
				doc := testDoc(t, 1)
				doc.AddRedaction("p0", mark("r1"))
				return doc
			},
			make: func(t *testing.T, doc *document.Document) Command {
				next := mark("r1")
				next.X = 99
				cmd, err := NewUpdateRedaction(doc, "p0", next)
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name: TypeDeleteRedaction,
			setup: func(t *testing.T) *document.Document {
				doc := testDoc(t, 1)
				doc.AddRedaction("p0", mark("r1"))
				return doc
			},
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewDeleteRedaction(doc, "p0", "r1")
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeUpdateOutline,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				cmd, err := NewUpdateOutline(doc, []document.OutlineItem{{Title: "T", PageID: "p0"}}, true)
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
		{
			name:  TypeBatch,
			setup: plainSetup,
			make: func(t *testing.T, doc *document.Document) Command {
				rot, err := NewRotatePages(doc, []string{"p0"}, 90)
				if err != nil {
					t.Fatal(err)
				}
				del, err := NewDeletePages(doc, []string{"p2"})
				if err != nil {
					t.Fatal(err)
				}
				cmd, err := NewBatch("combo", []Command{rot, del})
				if err != nil {
					t.Fatal(err)
				}
				return cmd
			},
		},
	}

	reg := NewRegistry(nil)
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			docA := v.setup(t)
			cmdA := v.make(t, docA)
			cmdA.Execute()

			env, err := Serialize(cmdA)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			if env.Type != v.name {
				t.Fatalf("type tag = %q, want %q", env.Type, v.name)
			}
			if env.Version != SchemaVersion {
				t.Fatalf("version = %d", env.Version)
			}
			if env.Timestamp != cmdA.CreatedAt() {
				t.Fatalf("timestamp %d != createdAt %d", env.Timestamp, cmdA.CreatedAt())
			}

			docB := v.setup(t)
			cmdB, err := reg.Decode(docB, env)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if cmdB.ID() != cmdA.ID() {
				t.Fatalf("decoded id %q != %q", cmdB.ID(), cmdA.ID())
			}
			cmdB.Execute()
			if a, b := docState(t, docA), docState(t, docB); a != b {
				t.Fatalf("post-execute state diverged:\nA: %s\nB: %s", a, b)
			}

			cmdA.Undo()
			cmdB.Undo()
			if a, b := docState(t, docA), docState(t, docB); a != b {
				t.Fatalf("post-undo state diverged:\nA: %s\nB: %s", a, b)
			}

			cmdA.Execute()
			cmdB.Execute()
			if a, b := docState(t, docA), docState(t, docB); a != b {
				t.Fatalf("post-redo state diverged:\nA: %s\nB: %s", a, b)
			}
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	reg := NewRegistry(nil)
	env := Envelope{Type: "fromTheFuture", Payload: json.RawMessage(`{"id":"x"}`), Version: SchemaVersion}
	_, err := reg.Decode(document.New(), env)
	var unknown *UnknownTypeError
	if err == nil || !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownTypeError", err)
	}
	if unknown.Type != "fromTheFuture" {
		t.Fatalf("unknown tag = %q", unknown.Type)
	}
}

func TestRegistryRejectsDuplicateTag(t *testing.T) {
	reg := NewRegistry(nil)
	err := reg.Register(TypeDeletePages, func(*document.Document, json.RawMessage, int64) (Command, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatal("duplicate registration should fail")
	}
}
