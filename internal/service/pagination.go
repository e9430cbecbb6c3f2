package service

// QuestionsPerPage is the size of every page.
const QuestionsPerPage = 10

// Paginate returns the 1-based page of items. A page whose first element
// falls outside items, including any page of an empty slice, is
// ErrPageNotFound. The last page may be short.
func Paginate[T any](items []T, page int) ([]T, error) {
	// Compare page counts before multiplying so huge pages can't overflow.
	pages := (len(items) + QuestionsPerPage - 1) / QuestionsPerPage
	if page < 1 || page > pages {
		return nil, ErrPageNotFound
	}

	start := (page - 1) * QuestionsPerPage

	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}
