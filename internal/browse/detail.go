package browse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// Detail is the content of the detail modal.
type Detail struct {
	Title       string      `json:"title"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Years       string      `json:"years"`
	Amount      string      `json:"amount"`
	FocusArea   string      `json:"focusArea,omitempty"`
	Status      string      `json:"status,omitempty"`
	Active      bool        `json:"active"`
	Website     string      `json:"website,omitempty"`
	Grants      []GrantCard `json:"grants,omitempty"`
}

// GrantCard describes one grant of a multi-grant organization.
type GrantCard struct {
	Title       string `json:"title"`
	Years       string `json:"years"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	FocusArea   string `json:"focusArea,omitempty"`
	Status      string `json:"status,omitempty"`
	Active      bool   `json:"active"`
}

// NewDetail builds the modal content for g. Missing optional fields are left
// empty.
func NewDetail(g grant.Grantee) Detail {
	years := strings.Join(g.Years, ", ")
	d := Detail{
		Title:       g.Name,
		Location:    LocationLine(g),
		Description: g.Description,
		Years:       years,
		Amount:      AmountLabel(g.Amount),
		FocusArea:   g.FocusArea,
		Status:      StatusLabel(g.Status),
		Active:      g.Status == grant.StatusActive,
		Website:     WebsiteURL(g.Website),
	}

	if !g.HasMultipleGrants || len(g.Grants) == 0 {
		return d
	}

	total := g.Amount
	if g.TotalAmount != nil {
		total = *g.TotalAmount
	}
	count := g.GrantCount
	if count == 0 {
		count = len(g.Grants)
	}
	d.Description = fmt.Sprintf("This organization received %d grants totaling %s over %s.", count, AmountLabel(total), years)
	d.Amount = AmountLabel(total)

	d.Grants = make([]GrantCard, len(g.Grants))
	for i, gr := range g.Grants {
		title := gr.ProjectName
		if title == "" {
			title = fmt.Sprintf("Grant #%d", i+1)
		}
		d.Grants[i] = GrantCard{
			Title:       title,
			Years:       strings.Join(gr.Years, ", "),
			Amount:      AmountLabel(gr.Amount),
			Description: gr.Description,
			FocusArea:   gr.FocusArea,
			Status:      StatusLabel(gr.Status),
			Active:      gr.Status == grant.StatusActive,
		}
	}
	return d
}

// LocationLine is "City, County", or just the county without a city.
func LocationLine(g grant.Grantee) string {
	if g.City != "" {
		return g.City + ", " + g.County
	}
	return g.County
}

// AmountLabel renders a valid amount as "$1,500" and an invalid one as "".
func AmountLabel(a grant.Amount) string {
	if !a.Valid() {
		return ""
	}
	return a.String()
}

// StatusLabel capitalizes a status for display.
func StatusLabel(s grant.Status) string {
	r, size := utf8.DecodeRuneInString(string(s))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r)) + string(s)[size:]
}

// WebsiteURL makes a website link absolute, assuming https.
func WebsiteURL(website string) string {
	website = strings.TrimSpace(website)
	if website == "" || strings.HasPrefix(website, "http") {
		return website
	}
	return "https://" + website
}
