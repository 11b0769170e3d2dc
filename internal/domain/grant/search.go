package grant

// SearchHit is one full-text match over the dataset.
type SearchHit struct {
	Name      string  `json:"name"`
	County    string  `json:"county"`
	City      string  `json:"city,omitempty"`
	FocusArea string  `json:"focusArea"`
	Status    Status  `json:"status"`
	Snippet   string  `json:"snippet"`
	Rank      float64 `json:"rank"`
}
