package models

type Profile struct {
	Username string `json:"username"`
	Theme    string `json:"theme"`
}

func DefaultProfile() Profile {
	return Profile{
		Username: "",
		Theme:    "dark",
	}
}

// QuoteCache holds the motivational quote fetched for one calendar day.
type QuoteCache struct {
	Day    string `json:"day"` // YYYY-MM-DD the quote belongs to
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// FreshFor reports whether the cache still covers the given day.
func (q QuoteCache) FreshFor(day string) bool {
	return q.Day == day && q.Text != ""
}
