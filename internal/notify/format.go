package notify

import (
	"fmt"
	"strings"

	"github.com/apprentice-alert/go-scraper/internal/domain"
)

// Format renders a batch of new listings under a role label as a
// markdown text block for the chat channel. Pure string building; the
// Notifier implementations handle delivery.
func Format(listings []*domain.Listing, label string) string {
	if len(listings) == 0 {
		return fmt.Sprintf("===%s===\nNo new apprenticeships found.\n", label)
	}

	blocks := make([]string, 0, len(listings))
	for _, l := range listings {
		closes := l.ClosingDate
		closes = strings.TrimPrefix(closes, "Closes on ")
		closes = strings.TrimPrefix(closes, "Closes in ")

		var b strings.Builder
		fmt.Fprintf(&b, "**%s in %s**\n", l.Title, l.Location)
		fmt.Fprintf(&b, "**Wage:** %s\n", l.Wage)
		fmt.Fprintf(&b, "**Company:** %s\n", l.Company)
		fmt.Fprintf(&b, "**Closes:** %s", closes)
		blocks = append(blocks, b.String())
	}

	body := strings.TrimSpace(strings.Join(blocks, "\n\n"))
	return fmt.Sprintf("===%s===\n%s\n", label, body)
}
