package browse

import (
	"net/url"
	"strings"
)

// GranteeParam is the page query parameter that selects an entry on load.
const GranteeParam = "grantee"

// ShareLinks are the links offered in the detail modal.
type ShareLinks struct {
	Page     string `json:"page"`
	X        string `json:"x"`
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
	Email    string `json:"email"`
}

// NewShareLinks builds the share links for the entry named name. baseURL is
// the map page; any query or fragment on it is dropped.
func NewShareLinks(baseURL, name string) ShareLinks {
	page := PageURL(baseURL, name)
	text := "Check out " + name + ", an NJCIC grantee supporting local journalism in New Jersey!"
	subject := "NJCIC Grantee: " + name
	body := text + "\n\n" + page

	return ShareLinks{
		Page:     page,
		X:        "https://twitter.com/intent/tweet?text=" + encodeURIComponent(text) + "&url=" + encodeURIComponent(page),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodeURIComponent(page),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + encodeURIComponent(page),
		Email:    "mailto:?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body),
	}
}

// PageURL is the map page URL that opens the entry named name.
func PageURL(baseURL, name string) string {
	base := baseURL
	if u, err := url.Parse(baseURL); err == nil {
		u.RawQuery = ""
		u.Fragment = ""
		u.RawFragment = ""
		base = u.String()
	} else if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	return base + "?" + GranteeParam + "=" + encodeURIComponent(name)
}

// GranteeFromQuery extracts the selected entry name from a page query string.
func GranteeFromQuery(rawQuery string) string {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return ""
	}
	return values.Get(GranteeParam)
}

var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s like the browser function of the same name,
// so links match the ones the map page builds.
func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}
