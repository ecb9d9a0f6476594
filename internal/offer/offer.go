package offer

// Offer represents one scraped vehicle relocation listing row.
// Identity is the ID alone; every other field is descriptive.
type Offer struct {
	ID      string `json:"id"`
	URL     string `json:"url,omitempty"`
	Origin  string `json:"origin"`
	Arrival string `json:"arrival"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Model   string `json:"model,omitempty"`
	Days    string `json:"days,omitempty"`
}

// IDs returns the set of identifiers present in a list of offers
func IDs(offers []Offer) map[string]struct{} {
	ids := make(map[string]struct{}, len(offers))
	for _, o := range offers {
		if o.ID != "" {
			ids[o.ID] = struct{}{}
		}
	}
	return ids
}
