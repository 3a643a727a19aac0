// Package history implements the linear undo/redo stack that owns command
// instances. The pointer indexes the most recently executed entry; -1 means
// nothing to undo. Executing while not at the tail discards the redo tail,
// and the stack is bounded: beyond the cap the oldest entries are dropped
// and the pointer shifts down with them.
package history

import (
	"time"

	"github.com/wudi/pdfdeck/command"
	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/observability"
)

// DefaultCap bounds memory at the cost of unlimited undo depth.
const DefaultCap = 50

// Entry pairs a command with the wall-clock time it entered the stack.
type Entry struct {
	Command command.Command
	At      int64 // epoch milliseconds, display only
}

type Config struct {
	// Cap is the maximum number of retained entries; zero means DefaultCap.
	Cap    int
	Logger observability.Logger
}

// Stack is the undo/redo pointer machine for one editing session. Not safe
// for concurrent use; the engine runs single-threaded by design.
type Stack struct {
	entries []Entry
	pointer int
	cap     int
	log     observability.Logger
}

func New(cfg Config) *Stack {
	c := cfg.Cap
	if c <= 0 {
		c = DefaultCap
	}
	return &Stack{pointer: -1, cap: c, log: observability.OrNop(cfg.Logger)}
}

// Execute runs the command and appends it as the new tail. Any previously
// undone entries above the pointer are discarded first: a new edit
// invalidates the old future.
func (s *Stack) Execute(cmd command.Command) {
	if s.pointer < len(s.entries)-1 {
		discarded := len(s.entries) - 1 - s.pointer
		s.entries = s.entries[:s.pointer+1]
		s.log.Debug("history branch discarded", observability.Int("entries", discarded))
	}
	start := time.Now()
	cmd.Execute()
	s.entries = append(s.entries, Entry{Command: cmd, At: cmd.CreatedAt()})
	s.pointer = len(s.entries) - 1
	if over := len(s.entries) - s.cap; over > 0 {
		s.entries = append(s.entries[:0], s.entries[over:]...)
		s.pointer -= over
	}
	s.log.Debug("command executed",
		observability.String("label", cmd.Label()),
		observability.Any(observability.MetricCommandExecTime, time.Since(start)),
		observability.Int(observability.MetricHistoryDepth, len(s.entries)))
}

// Undo reverses the entry at the pointer. Returns false when there is
// nothing to undo.
func (s *Stack) Undo() bool {
	if s.pointer < 0 {
		return false
	}
	s.entries[s.pointer].Command.Undo()
	s.pointer--
	return true
}

// Redo re-executes the entry above the pointer. Returns false at the tail.
func (s *Stack) Redo() bool {
	if s.pointer >= len(s.entries)-1 {
		return false
	}
	s.pointer++
	s.entries[s.pointer].Command.Execute()
	return true
}

// JumpTo walks the pointer to target by repeated undo or redo. Targets are
// clamped into [-1, Len-1]. The walk is O(distance) and relies on every
// command's execute/undo being an exact pair.
func (s *Stack) JumpTo(target int) {
	if target < -1 {
		target = -1
	}
	if target > len(s.entries)-1 {
		target = len(s.entries) - 1
	}
	for s.pointer > target {
		s.Undo()
	}
	for s.pointer < target {
		s.Redo()
	}
}

// Clear drops all history.
func (s *Stack) Clear() {
	s.entries = nil
	s.pointer = -1
}

func (s *Stack) CanUndo() bool { return s.pointer >= 0 }
func (s *Stack) CanRedo() bool { return s.pointer < len(s.entries)-1 }
func (s *Stack) Pointer() int  { return s.pointer }
func (s *Stack) Len() int      { return len(s.entries) }

// Labels returns the human-readable entry labels in stack order, for undo
// menus.
func (s *Stack) Labels() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Command.Label()
	}
	return out
}

// UndoLabel names the entry Undo would reverse.
func (s *Stack) UndoLabel() (string, bool) {
	if s.pointer < 0 {
		return "", false
	}
	return s.entries[s.pointer].Command.Label(), true
}

// RedoLabel names the entry Redo would re-apply.
func (s *Stack) RedoLabel() (string, bool) {
	if s.pointer >= len(s.entries)-1 {
		return "", false
	}
	return s.entries[s.pointer+1].Command.Label(), true
}

// Serialize projects every entry onto its wire envelope. An entry whose
// payload fails validation is skipped with a warning; the returned pointer
// is adjusted so undo/redo availability is preserved for the survivors.
func (s *Stack) Serialize() ([]command.Envelope, int) {
	envs := make([]command.Envelope, 0, len(s.entries))
	pointer := s.pointer
	for i, e := range s.entries {
		env, err := command.Serialize(e.Command)
		if err != nil {
			s.log.Warn("history entry not serialized",
				observability.Int("index", i),
				observability.String("label", e.Command.Label()),
				observability.Error("err", err))
			if i <= s.pointer {
				pointer--
			}
			continue
		}
		envs = append(envs, env)
	}
	return envs, pointer
}

// Rehydrate replaces the stack contents with commands reconstructed from
// persisted envelopes. Execute is NOT re-run; the document state was
// restored by its own snapshot; history is restored purely so undo/redo
// keep working. Entries that fail reconstruction are dropped with a
// warning, never fatally: partial history beats a blocked startup.
func (s *Stack) Rehydrate(reg *command.Registry, doc *document.Document, envs []command.Envelope, pointer int) {
	s.entries = s.entries[:0]
	for i, env := range envs {
		cmd, err := reg.Decode(doc, env)
		if err != nil {
			s.log.Warn("history entry not restored",
				observability.Int("index", i),
				observability.String("type", env.Type),
				observability.Error("err", err))
			if i <= pointer {
				pointer--
			}
			continue
		}
		s.entries = append(s.entries, Entry{Command: cmd, At: env.Timestamp})
	}
	if pointer > len(s.entries)-1 {
		pointer = len(s.entries) - 1
	}
	if pointer < -1 {
		pointer = -1
	}
	s.pointer = pointer
	if over := len(s.entries) - s.cap; over > 0 {
		s.entries = append(s.entries[:0], s.entries[over:]...)
		s.pointer -= over
		if s.pointer < -1 {
			s.pointer = -1
		}
	}
}
