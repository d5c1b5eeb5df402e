package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRollsBackCompletedStepsInReverse(t *testing.T) {
	var log []string
	step := func(name string, fail bool) func(context.Context) error {
		return func(context.Context) error {
			log = append(log, name)
			if fail {
				return errors.New("boom")
			}
			return nil
		}
	}

	tx := NewTransaction()
	tx.AddStep("a", step("a", false), step("undo-a", false))
	tx.AddStep("b", step("b", false), nil)
	tx.AddStep("c", step("c", false), step("undo-c", false))
	tx.AddStep("d", step("d", true), step("undo-d", false))

	err := tx.Execute(context.Background())

	assert.ErrorContains(t, err, "operation 'd' failed")
	assert.Equal(t, []string{"a", "b", "c", "d", "undo-c", "undo-a"}, log)
}

func TestTransactionCompensatesWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var compensated bool

	tx := NewTransaction()
	tx.AddStep("a", func(context.Context) error { return nil }, func(ctx context.Context) error {
		compensated = ctx.Err() == nil
		return nil
	})
	tx.AddStep("b", func(context.Context) error { cancel(); return context.Canceled }, nil)

	err := tx.Execute(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, compensated)
}
