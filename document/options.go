package document

// Option customizes RenderHTML.
type Option func(*page)

// WithTitle sets the document title and heading.
func WithTitle(title string) Option {
	return func(p *page) {
		p.Title = title
	}
}

// WithStylesheet links an external stylesheet in place of the built-in
// styles.
func WithStylesheet(href string) Option {
	return func(p *page) {
		p.Stylesheet = href
	}
}

// WithSubmitLabel changes the text of the submit button.
func WithSubmitLabel(label string) Option {
	return func(p *page) {
		if label != "" {
			p.Submit = label
		}
	}
}
