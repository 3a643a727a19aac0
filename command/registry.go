package command

import (
	"encoding/json"
	"fmt"

	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/observability"
)

// UnknownTypeError is the expected outcome of decoding an envelope whose
// type tag no release of this engine registered. Callers log it and drop
// the entry; one unknown command never blocks the rest of a history.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown command type %q", e.Type)
}

// DecodeFunc reconstructs a command bound to doc from a migrated payload.
type DecodeFunc func(doc *document.Document, payload json.RawMessage, createdAt int64) (Command, error)

// Registry maps stable type tags to reconstruction functions. It is built
// explicitly at startup, with no import side effects, so registration order is
// deterministic and visible in one place.
type Registry struct {
	decoders map[string]DecodeFunc
	log      observability.Logger
}

func NewRegistry(log observability.Logger) *Registry {
	r := &Registry{
		decoders: make(map[string]DecodeFunc),
		log:      observability.OrNop(log),
	}
	r.registerBuiltins()
	return r
}

// Register adds a decoder for a type tag. Registering a tag twice is a
// programming error and is reported rather than silently overwritten.
func (r *Registry) Register(tag string, fn DecodeFunc) error {
	if tag == "" || fn == nil {
		return fmt.Errorf("register: empty tag or nil decoder")
	}
	if _, ok := r.decoders[tag]; ok {
		return fmt.Errorf("register: duplicate tag %q", tag)
	}
	r.decoders[tag] = fn
	return nil
}

// Decode migrates the envelope to the current schema and reconstructs the
// command. The result behaves identically to the original instance: ids
// recorded in the payload are reused, never regenerated.
func (r *Registry) Decode(doc *document.Document, env Envelope) (Command, error) {
	env, err := Migrate(env)
	if err != nil {
		return nil, err
	}
	fn, ok := r.decoders[env.Type]
	if !ok {
		return nil, &UnknownTypeError{Type: env.Type}
	}
	cmd, err := fn(doc, env.Payload, env.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", env.Type, err)
	}
	return cmd, nil
}

// registerBuiltins is the static registration table for every concrete
// variant this engine ships.
func (r *Registry) registerBuiltins() {
	must := func(err error) {
		if err != nil {
			panic(err) // duplicate builtin tag is a programming error
		}
	}
	must(r.Register(TypeAddPages, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p addPagesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeAddPages(doc, p, ts)
	}))
	must(r.Register(TypeDeletePages, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p deletePagesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeDeletePages(doc, p, ts)
	}))
	must(r.Register(TypeDuplicatePages, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p duplicatePagesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeDuplicatePages(doc, p, ts)
	}))
	must(r.Register(TypeReorderPages, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p reorderPagesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeReorderPages(doc, p, ts)
	}))
	must(r.Register(TypeRotatePages, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p rotatePagesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeRotatePages(doc, p, ts)
	}))
	must(r.Register(TypeResizePages, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p resizePagesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeResizePages(doc, p, ts)
	}))
	must(r.Register(TypeInsertDivider, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p insertDividerPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeInsertDivider(doc, p, ts)
	}))
	must(r.Register(TypeRemoveSource, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p removeSourcePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeRemoveSource(doc, p, ts)
	}))
	must(r.Register(TypeAddRedaction, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p addRedactionPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeAddRedaction(doc, p, ts)
	}))
	must(r.Register(TypeUpdateRedaction, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p updateRedactionPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeUpdateRedaction(doc, p, ts)
	}))
	must(r.Register(TypeDeleteRedaction, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p deleteRedactionPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeDeleteRedaction(doc, p, ts)
	}))
	must(r.Register(TypeUpdateOutline, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p updateOutlinePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeUpdateOutline(doc, p, ts)
	}))
	must(r.Register(TypeBatch, func(doc *document.Document, raw json.RawMessage, ts int64) (Command, error) {
		var p batchPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return decodeBatch(r, doc, p, ts)
	}))
}
