package idutil

import (
	"context"

	"github.com/habitquest/backend/pkg/xcontext"
)

// NewCompletionID generates a time-sortable id for a completion record.
// Sortability matters because completion history is append-only and often
// scanned in chronological order.
func NewCompletionID(ctx context.Context) string {
	return xcontext.SnowFlake(ctx).Generate().String()
}
