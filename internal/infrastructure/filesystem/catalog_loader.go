package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"learning-progress-engine/internal/domain/challenge"
	"learning-progress-engine/internal/domain/points"
	"learning-progress-engine/internal/domain/revision"
)

// CatalogLoader handles loading product catalogs from files
type CatalogLoader struct{}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader() *CatalogLoader {
	return &CatalogLoader{}
}

// CatalogData represents the JSON structure of the product catalog file.
// Omitted sections fall back to the built-in defaults.
type CatalogData struct {
	Challenges         *challenge.Catalog `json:"challenges"`
	Stages             []points.Stage     `json:"stages"`
	RevisionOffsetDays []int              `json:"revision_offset_days"`
}

// LoadFromFile loads and validates the product catalog from a JSON file.
// Misconfigured catalogs (unknown challenge kinds, non-positive targets or
// rewards, descending stages or offsets) are rejected here, at load time.
func (cl *CatalogLoader) LoadFromFile(filename string) (*CatalogData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var data CatalogData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode catalog JSON: %w", err)
	}

	if data.Challenges != nil {
		if err := data.Challenges.Validate(); err != nil {
			return nil, fmt.Errorf("invalid challenge catalog: %w", err)
		}
	}
	if data.Stages != nil {
		if _, err := points.NewLadder(data.Stages); err != nil {
			return nil, fmt.Errorf("invalid stage catalog: %w", err)
		}
	}
	if data.RevisionOffsetDays != nil {
		config := revision.PlanConfig{OffsetDays: data.RevisionOffsetDays}
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid revision offsets: %w", err)
		}
	}

	return &data, nil
}
