package command

import (
	"errors"

	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/observability"
)

// ErrEmptyBatch is returned when a batch payload yields no restorable
// children; the history rehydrate loop drops such entries.
var ErrEmptyBatch = errors.New("batch: no restorable children")

// Batch composes an ordered list of commands into one atomic history entry.
// Undo unwinds the children in reverse, which is required whenever children
// have order-dependent preconditions (add-source-then-add-pages being the
// canonical case).
type Batch struct {
	meta
	children []Command
}

func NewBatch(label string, children []Command) (*Batch, error) {
	if len(children) == 0 {
		return nil, errors.New("batch: no child commands")
	}
	for _, c := range children {
		if c == nil {
			return nil, errors.New("batch: nil child command")
		}
	}
	if label == "" {
		label = children[0].Label()
	}
	return &Batch{
		meta:     newMeta(label),
		children: append([]Command(nil), children...),
	}, nil
}

// Children returns the composed commands in execution order.
func (c *Batch) Children() []Command { return append([]Command(nil), c.children...) }

func (c *Batch) Execute() {
	for _, child := range c.children {
		child.Execute()
	}
}

func (c *Batch) Undo() {
	for i := len(c.children) - 1; i >= 0; i-- {
		c.children[i].Undo()
	}
}

type batchPayload struct {
	ID       string     `json:"id"`
	Label    string     `json:"label,omitempty"`
	Commands []Envelope `json:"commands"`
}

func (c *Batch) payload() (batchPayload, error) {
	envs := make([]Envelope, len(c.children))
	for i, child := range c.children {
		env, err := Serialize(child)
		if err != nil {
			return batchPayload{}, err
		}
		envs[i] = env
	}
	return batchPayload{ID: c.id, Label: c.label, Commands: envs}, nil
}

// decodeBatch reconstructs children through the registry. A child whose type
// is unknown or whose decode fails is skipped with a logged warning rather
// than failing the whole batch: 9 of 10 restorable children beat an
// unrecoverable history entry.
func decodeBatch(r *Registry, doc *document.Document, p batchPayload, createdAt int64) (*Batch, error) {
	children := make([]Command, 0, len(p.Commands))
	for i, env := range p.Commands {
		child, err := r.Decode(doc, env)
		if err != nil {
			r.log.Warn("batch child not restored",
				observability.String("batch", p.ID),
				observability.Int("child", i),
				observability.String("type", env.Type),
				observability.Error("err", err))
			continue
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return nil, ErrEmptyBatch
	}
	return &Batch{
		meta:     restoredMeta(p.ID, p.Label, createdAt),
		children: children,
	}, nil
}
