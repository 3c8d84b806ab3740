package catalog

import "fmt"

// UnsupportedStyleMessage is returned for any citation style other than MLA
// or Chicago.
const UnsupportedStyleMessage = "Invalid citation style. Supported styles: MLA, Chicago."

// MLACitation formats a book as `Last,First. "Title", Publisher.`
// It reports false when the book has no author or no publisher attached.
func MLACitation(b Book) (string, bool) {
	if b.Author == nil || b.Publisher == nil {
		return "", false
	}
	return fmt.Sprintf("%s,%s. %q, %s.", b.Author.LastName, b.Author.FirstName, b.Title, b.Publisher.Name), true
}

// ChicagoCitation formats a book as `First Last, "Title," Publisher.`
// It reports false when the book has no author or no publisher attached.
func ChicagoCitation(b Book) (string, bool) {
	if b.Author == nil || b.Publisher == nil {
		return "", false
	}
	return fmt.Sprintf("%s %s, \"%s,\" %s.", b.Author.FirstName, b.Author.LastName, b.Title, b.Publisher.Name), true
}
