package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// FileSource reads a snapshot from a local JSON file. Used for development
// and by the CLI.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the snapshot file at path.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	return &FileSource{path: absPath}, nil
}

func (s *FileSource) read() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &snap, nil
}

// FetchProducts implements Source.
func (s *FileSource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	return snap.Products, nil
}

// FetchPolicies implements Source.
func (s *FileSource) FetchPolicies(ctx context.Context) (models.Policies, error) {
	snap, err := s.read()
	if err != nil {
		return models.Policies{}, err
	}
	return snap.Policies, nil
}

// FetchPages implements Source.
func (s *FileSource) FetchPages(ctx context.Context) ([]models.Page, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	return snap.Pages, nil
}

// FetchDiscounts implements Source.
func (s *FileSource) FetchDiscounts(ctx context.Context) ([]models.Discount, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	return snap.Discounts, nil
}
