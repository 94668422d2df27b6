package cleaner

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner normalizes text pulled out of scraped markup
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner creates a cleaner that strips all markup
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// CleanText strips any markup from s, decodes HTML entities and
// collapses runs of whitespace (including non-breaking spaces) into
// single spaces.
func (c *Cleaner) CleanText(s string) string {
	s = c.policy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
