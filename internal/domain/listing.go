package domain

// Listing represents one apprenticeship posting scraped from the
// Find an apprenticeship search results.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Wage        string `json:"wage"`
	ClosingDate string `json:"closing_date"`
	JobURL      string `json:"job_url"`
}

// Category is one configured search target: a filtered results URL plus
// the role labels used to address notifications and spreadsheet sheets.
type Category struct {
	Name       string   `json:"name" yaml:"name"`
	URL        string   `json:"url" yaml:"url"`
	RoleLabels []string `json:"role_labels" yaml:"role_labels"`
}

// ListingSource identifies a listings site
type ListingSource string

const (
	SourceFindApprenticeship ListingSource = "findapprenticeship"
)
