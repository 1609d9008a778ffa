// Package store persists task results so they can be fetched after the
// request that produced them has returned.
package store

import (
	"context"
	"errors"

	"github.com/ironsheep/fontfit-mcp/internal/report"
)

// ErrNotFound is returned by Load when no result exists for a task id.
var ErrNotFound = errors.New("task result not found")

// Store saves and loads task results by task id.
type Store interface {
	Save(ctx context.Context, res *report.TaskResult) error
	Load(ctx context.Context, taskID string) (*report.TaskResult, error)
}
