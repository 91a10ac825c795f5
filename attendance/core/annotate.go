package core

import (
	"context"
	"fmt"

	"atiempo.app/atiempo/attendance/store"
)

// Annotator writes the human side-channel of a day record. Annotations
// never touch entry or exit times, so a concurrent scan cannot be
// clobbered.
type Annotator struct {
	store     store.DayStore
	employees EmployeeDirectory
}

func NewAnnotator(s store.DayStore, employees EmployeeDirectory) *Annotator {
	return &Annotator{store: s, employees: employees}
}

// Annotate sets the explanation and observation on the addressed day,
// creating the record if the year was never bootstrapped.
func (a *Annotator) Annotate(ctx context.Context, key store.DayKey, explanation, observation string) error {
	known, err := a.employees.Exists(ctx, key.EmployeeID)
	if err != nil {
		return translate(err)
	}
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownEmployee, key.EmployeeID)
	}
	if err := a.store.MergeAnnotations(ctx, key, explanation, observation); err != nil {
		return translate(err)
	}
	return nil
}
