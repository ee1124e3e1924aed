package utils

type Page struct {
	Number int
	IsLink bool
}

// Pagination is the template model of a pager.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []Page
}

// TotalPages is the number of pages needed for total items.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// GeneratePagination shows a window of pages around the current one plus
// the first and last pages. Zero-numbered pages are ellipses. It returns
// nil when there is nothing to page through.
func GeneratePagination(currentPage, totalPages int) *Pagination {
	if totalPages <= 1 {
		return nil
	}

	const window = 2 // pages on each side of the current page

	pages := []Page{{Number: 1, IsLink: true}}
	if currentPage > window+2 {
		pages = append(pages, Page{})
	}

	start := max(2, currentPage-window)
	end := min(totalPages-1, currentPage+window)
	for i := start; i <= end; i++ {
		pages = append(pages, Page{Number: i, IsLink: true})
	}

	if currentPage < totalPages-(window+1) {
		pages = append(pages, Page{})
	}
	pages = append(pages, Page{Number: totalPages, IsLink: true})

	final := make([]Page, 0, len(pages))
	seen := make(map[int]bool)
	for _, p := range pages {
		if p.Number == currentPage {
			p.IsLink = false
		}
		if p.Number == 0 {
			final = append(final, p)
			continue
		}
		if !seen[p.Number] {
			final = append(final, p)
			seen[p.Number] = true
		}
	}

	return &Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		Pages:       final,
	}
}
