package scripting

import "context"

// Engine represents a scripting engine (e.g., JavaScript) for automating
// page assembly edits.
type Engine interface {
	// Execute runs a script against the registered editor session.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterEditor exposes an editing session to the engine.
	RegisterEditor(api EditorAPI) error
}

// EditorAPI is the safe, controlled surface a script gets. Every mutation
// goes through the session's command/history machinery, so scripted edits
// are as undoable as interactive ones.
type EditorAPI interface {
	PageIDs() []string
	DeletePages(pageIDs []string) error
	DuplicatePages(pageIDs []string) ([]string, error)
	RotatePages(pageIDs []string, degrees int) error
	MovePage(pageID string, to int) error
	InsertDivider(index int) (string, error)
	ReorderByIDs(pageIDs []string) error

	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool

	// Alert surfaces a message to whoever is running the script.
	Alert(message string)
}
