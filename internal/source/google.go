// internal/source/google.go
package source

// GoogleBaseURL is the production Google Shopping endpoint.
const GoogleBaseURL = "https://www.google.com"

// NewGoogle returns the Google Shopping scrape client. The selectors target
// the first grid result of a `tbm=shop` search.
func NewGoogle(opts Options) Client {
	opts.fill(GoogleBaseURL)
	return &scrapeClient{
		name:      "google",
		searchURL: opts.BaseURL + "/search?tbm=shop&q=%s",
		baseURL:   opts.BaseURL,
		selectors: selectorSet{
			result: "div.sh-dgr__grid-result",
			price:  "span.T14wmb",
			link:   "a.shntl",
		},
		opts: opts,
	}
}
