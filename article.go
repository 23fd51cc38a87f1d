package teletext

// Source identifies where an article was published.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is the input to a page. Field tags follow the NewsAPI article
// object.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"urlToImage"`
	Source      Source `json:"source"`
	// Date is the ISO-8601 publish date.
	Date string `json:"publishedAt"`
}
