package config

import (
	"fmt"
	"os"

	"github.com/apprentice-alert/go-scraper/internal/domain"
	"gopkg.in/yaml.v3"
)

type categoriesFile struct {
	Categories []domain.Category `yaml:"categories"`
}

// DefaultCategories returns the compiled-in search targets: level-6
// listings for the digital, engineering and legal/finance routes.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{
			Name:       "digital",
			URL:        "https://www.findapprenticeship.service.gov.uk/apprenticeships?sort=AgeAsc&searchTerm=&location=&distance=all&levelIds=6&routeIds=7",
			RoleLabels: []string{"Tech"},
		},
		{
			Name:       "engineering",
			URL:        "https://www.findapprenticeship.service.gov.uk/apprenticeships?sort=AgeAsc&searchTerm=&location=&distance=all&levelIds=6&routeIds=9",
			RoleLabels: []string{"Engineering"},
		},
		{
			Name:       "finance",
			URL:        "https://www.findapprenticeship.service.gov.uk/apprenticeships?sort=AgeAsc&searchTerm=&location=&distance=all&levelIds=6&routeIds=12",
			RoleLabels: []string{"Finance", "Law"},
		},
	}
}

// LoadCategories reads search targets from a YAML file, falling back to
// the compiled-in defaults when path is empty.
func LoadCategories(path string) ([]domain.Category, error) {
	if path == "" {
		return DefaultCategories(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var f categoriesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}

	if err := ValidateCategories(f.Categories); err != nil {
		return nil, err
	}
	return f.Categories, nil
}

// ValidateCategories enforces the invariants the runner and exporter
// rely on: a URL per category and at least one role label.
func ValidateCategories(categories []domain.Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("no categories configured")
	}
	for i, c := range categories {
		if c.URL == "" {
			return fmt.Errorf("categories[%d] (%s): url is required", i, c.Name)
		}
		if len(c.RoleLabels) == 0 {
			return fmt.Errorf("categories[%d] (%s): at least one role label is required", i, c.Name)
		}
		for j, label := range c.RoleLabels {
			if label == "" {
				return fmt.Errorf("categories[%d] (%s): role_labels[%d] cannot be empty", i, c.Name, j)
			}
		}
	}
	return nil
}
