package skill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joemocode/cakewalk-skill/internal/birthday"
	"github.com/joemocode/cakewalk-skill/internal/store"
)

// loadBirthdayInterceptor copies a complete persisted birth date into the
// session before dispatch, so launch predicates can read it synchronously.
// An unreadable store is treated the same as no record on file.
type loadBirthdayInterceptor struct {
	store  store.Store
	logger *slog.Logger
}

func (i *loadBirthdayInterceptor) Process(ctx context.Context, in *Input) error {
	attrs, err := i.store.Get(ctx, in.Envelope.Device.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load persisted attributes: %w", err)
	}

	if rec, ok := birthday.FromAttributes(attrs); ok {
		in.Session.SetBirthday(rec)
	}
	return nil
}
