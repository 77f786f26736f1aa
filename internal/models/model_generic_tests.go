// This file contains tests intended to be used by the implementations of the
// Completer interface
package models

import (
	"context"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

// Completer_Test ensures that implementations return once the context is
// cancelled, instead of blocking on the vendor
func Completer_Test(t *testing.T, c Completer) {
	testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
		c.Complete(ctx, CompletionRequest{Prompt: "Question: 1+1"})
	}, time.Second)
}
