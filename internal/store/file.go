package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/fontfit-mcp/internal/report"
)

// FileStore keeps each result as <dir>/<task id>_result.json.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create result dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

// Path returns where the result for taskID is stored.
func (s *FileStore) Path(taskID string) string {
	return filepath.Join(s.Dir, taskID+"_result.json")
}

// Save writes res as indented JSON, replacing any earlier result. The file is
// written to a temporary name first so readers never see a partial result.
func (s *FileStore) Save(ctx context.Context, res *report.TaskResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validID(res.TaskID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, res.TaskID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(res.TaskID)); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

// Load reads the result for taskID.
func (s *FileStore) Load(ctx context.Context, taskID string) (*report.TaskResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validID(taskID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(taskID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}

	var res report.TaskResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", taskID, err)
	}
	return &res, nil
}

// validID keeps task ids from escaping the result directory.
func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("invalid task id %q", id)
	}
	return nil
}
