package scripting

import (
	"context"

	"github.com/dop251/goja"
)

// GojaEngine runs automation scripts on an embedded JavaScript VM. Not safe
// for concurrent use; one engine serves one session.
type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	vm := goja.New()
	return &GojaEngine{vm: vm}
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

// RegisterEditor exposes the session as a global 'deck' object plus the
// conventional 'app.alert'. Errors returned by the editor surface as
// thrown JS exceptions.
func (e *GojaEngine) RegisterEditor(api EditorAPI) error {
	appObj := e.vm.NewObject()
	err := appObj.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		api.Alert(msg)
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	if err := e.vm.Set("app", appObj); err != nil {
		return err
	}

	deck := e.vm.NewObject()
	bindings := map[string]interface{}{
		"pageIds":        api.PageIDs,
		"deletePages":    api.DeletePages,
		"duplicatePages": api.DuplicatePages,
		"rotatePages":    api.RotatePages,
		"movePage":       api.MovePage,
		"insertDivider":  api.InsertDivider,
		"reorder":        api.ReorderByIDs,
		"undo":           api.Undo,
		"redo":           api.Redo,
		"canUndo":        api.CanUndo,
		"canRedo":        api.CanRedo,
	}
	for name, fn := range bindings {
		if err := deck.Set(name, fn); err != nil {
			return err
		}
	}
	return e.vm.Set("deck", deck)
}
