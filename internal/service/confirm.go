package service

import "context"

// Confirmer is the yes/no prompt boundary. Destructive or one-way actions
// (deleting a persisted row, posting a stock document) go through it before
// any network call is made.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}
