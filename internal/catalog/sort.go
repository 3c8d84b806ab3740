package catalog

import "sort"

// SortByPublisher orders books by publisher name, author last name, author
// first name, then title, all ascending. Comparisons are byte-wise and books
// without a publisher or author sort as if those fields were empty, matching
// the COLLATE "C" keys of the books_sorted_by_publisher view.
func SortByPublisher(books []Book) {
	sort.SliceStable(books, func(i, j int) bool {
		if c := compareStrings(publisherName(books[i]), publisherName(books[j])); c != 0 {
			return c < 0
		}
		return lessByAuthorTitle(books[i], books[j])
	})
}

// SortByAuthor orders books by author last name, author first name, then
// title, all ascending, matching the books_sorted_by_author view likewise.
func SortByAuthor(books []Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return lessByAuthorTitle(books[i], books[j])
	})
}

func lessByAuthorTitle(a, b Book) bool {
	if c := compareStrings(authorLastName(a), authorLastName(b)); c != 0 {
		return c < 0
	}
	if c := compareStrings(authorFirstName(a), authorFirstName(b)); c != 0 {
		return c < 0
	}
	return a.Title < b.Title
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func publisherName(b Book) string {
	if b.Publisher == nil {
		return ""
	}
	return b.Publisher.Name
}

func authorLastName(b Book) string {
	if b.Author == nil {
		return ""
	}
	return b.Author.LastName
}

func authorFirstName(b Book) string {
	if b.Author == nil {
		return ""
	}
	return b.Author.FirstName
}
