package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBook(id int64, title, pubName, last, first string) Book {
	b := Book{ID: id, Title: title}
	if pubName != "" {
		b.Publisher = &Publisher{Name: pubName}
	}
	if last != "" || first != "" {
		b.Author = &Author{LastName: last, FirstName: first}
	}
	return b
}

func bookIDs(books []Book) []int64 {
	ids := make([]int64, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}

func TestSortByPublisher(t *testing.T) {
	books := []Book{
		testBook(1, "Emma", "Penguin", "Austen", "Jane"),
		testBook(2, "1984", "Secker", "Orwell", "George"),
		testBook(3, "Animal Farm", "Secker", "Orwell", "George"),
		testBook(4, "Persuasion", "Penguin", "Austen", "Jane"),
		testBook(5, "Walden", "Penguin", "Thoreau", "Henry"),
	}

	SortByPublisher(books)

	// Publisher name, then author last, first, then title.
	assert.Equal(t, []int64{1, 4, 5, 2, 3}, bookIDs(books))
}

func TestSortByAuthor(t *testing.T) {
	books := []Book{
		testBook(1, "Walden", "Penguin", "Thoreau", "Henry"),
		testBook(2, "1984", "Secker", "Orwell", "George"),
		testBook(3, "Emma", "Penguin", "Austen", "Jane"),
		testBook(4, "Animal Farm", "Secker", "Orwell", "George"),
	}

	SortByAuthor(books)

	assert.Equal(t, []int64{3, 2, 4, 1}, bookIDs(books))
}

func TestSortByAuthor_SameAuthorOrdersByTitle(t *testing.T) {
	books := []Book{
		testBook(1, "Homage to Catalonia", "", "Orwell", "George"),
		testBook(2, "1984", "", "Orwell", "George"),
		testBook(3, "Animal Farm", "", "Orwell", "George"),
	}

	SortByAuthor(books)

	assert.Equal(t, []int64{2, 3, 1}, bookIDs(books))
}

// The sorted views pin their keys to COLLATE "C", so the in-memory
// comparison must stay byte-wise: uppercase before lowercase, space before
// any letter. A locale-aware comparison would order these differently.
func TestSort_ComparesBytewise(t *testing.T) {
	t.Run("uppercase publisher sorts before lowercase", func(t *testing.T) {
		books := []Book{
			testBook(1, "Hatchet", "apple", "Paulsen", "Gary"),
			testBook(2, "Ways of Seeing", "Banana", "Berger", "John"),
		}

		SortByPublisher(books)

		assert.Equal(t, []int64{2, 1}, bookIDs(books))
	})

	t.Run("space in a last name sorts before letters", func(t *testing.T) {
		books := []Book{
			testBook(1, "The Dispossessed", "", "LeGuin", "Ursula"),
			testBook(2, "The Lathe of Heaven", "", "Le Guin", "Ursula"),
		}

		SortByAuthor(books)

		assert.Equal(t, []int64{2, 1}, bookIDs(books))
	})
}

func TestSort_MissingRelationsSortFirst(t *testing.T) {
	books := []Book{
		testBook(1, "Emma", "Penguin", "Austen", "Jane"),
		testBook(2, "Anonymous Pamphlet", "", "", ""),
	}

	SortByPublisher(books)
	assert.Equal(t, []int64{2, 1}, bookIDs(books))

	SortByAuthor(books)
	assert.Equal(t, []int64{2, 1}, bookIDs(books))
}
