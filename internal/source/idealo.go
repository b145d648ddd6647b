// internal/source/idealo.go
package source

// IdealoBaseURL is the production Idealo price comparison endpoint.
const IdealoBaseURL = "https://www.idealo.de"

// NewIdealo returns the Idealo scrape client, reading the first entry of the
// offer list on the main search results page.
func NewIdealo(opts Options) Client {
	opts.fill(IdealoBaseURL)
	return &scrapeClient{
		name:      "idealo",
		searchURL: opts.BaseURL + "/preisvergleich/MainSearchProductCategory.html?q=%s",
		baseURL:   opts.BaseURL,
		selectors: selectorSet{
			result: "div.offerList-item",
			price:  ".price",
			link:   "a",
		},
		opts: opts,
	}
}
