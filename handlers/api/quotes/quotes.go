package quotes

import (
	"net/http"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/go-chi/render"
)

type QuoteProvider interface {
	Random() core.Quote
	All() []core.Quote
	ByAuthor(name string) []core.Quote
	Search(term string) []core.Quote
	Categories() []core.Category
	ByCategory(id string) []core.Quote
}

// HandleRandom returns one randomly chosen quote.
func HandleRandom(provider QuoteProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, provider.Random())
	}
}

// HandleSearch filters the dataset. The q parameter matches text or author,
// author matches the author only and category selects one category. The
// filters combine; with none set every quote is returned.
func HandleSearch(provider QuoteProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var result []core.Quote
		switch {
		case query.Get("category") != "":
			result = provider.ByCategory(query.Get("category"))
		case query.Get("author") != "":
			result = provider.ByAuthor(query.Get("author"))
		case query.Get("q") != "":
			result = provider.Search(query.Get("q"))
		default:
			result = provider.All()
		}

		result = intersect(result, query.Get("author"), provider.ByAuthor)
		result = intersect(result, query.Get("q"), provider.Search)
		render.JSON(w, r, result)
	}
}

// HandleCategories lists the quote categories.
func HandleCategories(provider QuoteProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, provider.Categories())
	}
}

func intersect(result []core.Quote, arg string, lookup func(string) []core.Quote) []core.Quote {
	if arg == "" {
		return result
	}
	allowed := make(map[core.Quote]bool)
	for _, q := range lookup(arg) {
		allowed[q] = true
	}
	out := []core.Quote{}
	for _, q := range result {
		if allowed[q] {
			out = append(out, q)
		}
	}
	return out
}
