package secondary

// Sharer hands a plain-text task representation off to an external sharing facility.
type Sharer interface {
	Share(text string) error
}
