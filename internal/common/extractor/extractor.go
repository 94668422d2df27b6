package extractor

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/apprentice-alert/go-scraper/internal/common/cleaner"
	"github.com/apprentice-alert/go-scraper/internal/domain"
)

// BaseURL is the origin prefixed onto relative detail-page links
const BaseURL = "https://www.findapprenticeship.service.gov.uk"

// Selectors defines the document queries for one search-results entry.
// The class-attribute selectors match the full class list exactly, the
// way the GOV.UK frontend renders it.
type Selectors struct {
	// List page
	Entry string
	// Per-entry captions
	PostedDate  string
	Title       string
	Company     string
	Location    string
	ClosingDate string
	Link        string
	// Bolded label whose parent carries the wage text
	WageLabel string
}

// DefaultSelectors targets the Find an apprenticeship results markup
func DefaultSelectors() Selectors {
	return Selectors{
		Entry:       "li.das-search-results__list-item",
		PostedDate:  "p[class='govuk-body govuk-!-font-size-16 das-!-color-dark-grey']",
		Title:       "h2.govuk-heading-m a",
		Company:     "p[class='govuk-body govuk-!-margin-bottom-0']",
		Location:    "p[class='govuk-body das-!-color-dark-grey']",
		ClosingDate: "p[class='govuk-body govuk-!-margin-bottom-0 govuk-!-margin-top-1']",
		Link:        "a.das-search-results__link",
		WageLabel:   "b",
	}
}

// Extractor parses search-results markup into listings, keeping only
// entries posted on the reference date and not yet in the seen set
type Extractor struct {
	selectors Selectors
	cleaner   *cleaner.Cleaner
}

// NewExtractor creates a goquery-based listing extractor
func NewExtractor(selectors Selectors, cl *cleaner.Cleaner) *Extractor {
	if cl == nil {
		cl = cleaner.NewCleaner()
	}
	return &Extractor{
		selectors: selectors,
		cleaner:   cl,
	}
}

// PostedCaption returns the posted-date caption the site renders for
// refDate, e.g. "Posted 3 March". No leading zero on the day.
func PostedCaption(refDate time.Time) string {
	return fmt.Sprintf("Posted %d %s", refDate.Day(), refDate.Month().String())
}

// Extract parses markup and returns the listings posted on refDate whose
// ids are not in seen, in document order. Malformed entries are skipped
// with a warning; markup with no matching entries yields an empty slice.
func (e *Extractor) Extract(markup []byte, seen map[string]struct{}, refDate time.Time) ([]*domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	postedToday := PostedCaption(refDate)
	var listings []*domain.Listing

	doc.Find(e.selectors.Entry).Each(func(i int, entry *goquery.Selection) {
		posted, ok := e.entryText(entry, e.selectors.PostedDate)
		if !ok || !strings.Contains(posted, postedToday) {
			return
		}

		listing, err := e.extractEntry(entry)
		if err != nil {
			log.Printf("[Extractor] Skipping entry %d: %v", i, err)
			return
		}

		// The date filter normally excludes older postings already;
		// this catches reposted listings that keep their id.
		if _, dup := seen[listing.ID]; dup {
			return
		}

		listings = append(listings, listing)
	})

	return listings, nil
}

// extractEntry runs the per-field extractors over one entry node. A
// missing required field fails just this entry.
func (e *Extractor) extractEntry(entry *goquery.Selection) (*domain.Listing, error) {
	title, ok := e.entryText(entry, e.selectors.Title)
	if !ok {
		return nil, fmt.Errorf("missing title")
	}

	company, ok := e.entryText(entry, e.selectors.Company)
	if !ok {
		return nil, fmt.Errorf("missing company")
	}

	location, ok := e.entryText(entry, e.selectors.Location)
	if !ok {
		return nil, fmt.Errorf("missing location")
	}

	href, ok := e.entryLink(entry)
	if !ok {
		return nil, fmt.Errorf("missing detail link")
	}

	id := lastPathSegment(href)
	if id == "" {
		return nil, fmt.Errorf("no listing id in link %q", href)
	}

	return &domain.Listing{
		ID:          id,
		Title:       title,
		Location:    location,
		Company:     company,
		Wage:        e.entryWage(entry),
		ClosingDate: e.entryClosingDate(entry),
		JobURL:      BaseURL + href,
	}, nil
}

// entryText returns the cleaned text of the first node matching
// selector, reporting whether a non-empty value was found
func (e *Extractor) entryText(entry *goquery.Selection, selector string) (string, bool) {
	sel := entry.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	text := e.cleaner.CleanText(sel.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// entryLink returns the detail-page href of the entry's primary link
func (e *Extractor) entryLink(entry *goquery.Selection) (string, bool) {
	href, ok := entry.Find(e.selectors.Link).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", false
	}
	return href, true
}

// entryWage finds the bolded "Wage" label and takes its parent's text
// with the label stripped; "Not specified" when the label is absent
func (e *Extractor) entryWage(entry *goquery.Selection) string {
	wage := ""
	entry.Find(e.selectors.WageLabel).EachWithBreak(func(_ int, b *goquery.Selection) bool {
		if strings.TrimSpace(b.Text()) != "Wage" {
			return true
		}
		wage = e.cleaner.CleanText(strings.Replace(b.Parent().Text(), "Wage", "", 1))
		return false
	})
	if wage == "" {
		return "Not specified"
	}
	return wage
}

// entryClosingDate returns the closing-date caption, or "Not specified"
func (e *Extractor) entryClosingDate(entry *goquery.Selection) string {
	closing, ok := e.entryText(entry, e.selectors.ClosingDate)
	if !ok {
		return "Not specified"
	}
	return closing
}

func lastPathSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
