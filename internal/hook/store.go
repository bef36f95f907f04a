package hook

import (
	"context"
	"fmt"

	"github.com/hairhealth/api-contract-tests/internal/model"
)

// RunSaver is the part of the run history that StoreHook needs.
type RunSaver interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// StoreHook saves each run to the history, and sets the run's ID so that later listeners can
// refer to it.
type StoreHook struct {
	Store RunSaver
}

func (h StoreHook) Name() string {
	return "store"
}

func (h StoreHook) RunFinished(ctx context.Context, run *model.Run) error {
	id, err := h.Store.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	run.ID = id
	return nil
}
