package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apprentice-alert/go-scraper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()
	require.NoError(t, ValidateCategories(categories))
	require.Len(t, categories, 3)
	assert.Equal(t, []string{"Finance", "Law"}, categories[2].RoleLabels)
}

func TestLoadCategories_EmptyPathUsesDefaults(t *testing.T) {
	categories, err := LoadCategories("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories(), categories)
}

func TestLoadCategories_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := `categories:
  - name: digital
    url: https://example.test/digital
    role_labels: [Tech]
  - name: finance
    url: https://example.test/finance
    role_labels:
      - Finance
      - Law
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	categories, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "https://example.test/digital", categories[0].URL)
	assert.Equal(t, []string{"Finance", "Law"}, categories[1].RoleLabels)
}

func TestLoadCategories_MissingFile(t *testing.T) {
	_, err := LoadCategories(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateCategories(t *testing.T) {
	assert.Error(t, ValidateCategories(nil))

	assert.Error(t, ValidateCategories([]domain.Category{
		{Name: "digital", RoleLabels: []string{"Tech"}},
	}), "missing url")

	assert.Error(t, ValidateCategories([]domain.Category{
		{Name: "digital", URL: "https://example.test"},
	}), "missing role labels")

	assert.Error(t, ValidateCategories([]domain.Category{
		{Name: "digital", URL: "https://example.test", RoleLabels: []string{""}},
	}), "empty role label")

	assert.NoError(t, ValidateCategories([]domain.Category{
		{Name: "digital", URL: "https://example.test", RoleLabels: []string{"Tech"}},
	}))
}
