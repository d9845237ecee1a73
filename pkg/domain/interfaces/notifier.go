package interfaces

import (
	"context"

	"github.com/opsfloor/opevents/pkg/domain/model"
)

// Notifier sends the assignment notice after a successful capture. The
// validator guarantees the record carries every field the notice needs, so
// implementations never see a partially populated payload.
type Notifier interface {
	NotifyAssignment(ctx context.Context, e *model.Event) error
}
