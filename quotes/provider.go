// Package quotes serves the bundled inspirational quote dataset.
package quotes

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Ranger10sam/Serenify-App/core"
	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var dataset []byte

type (
	// Provider answers quote lookups over an immutable dataset.
	Provider struct {
		quotes     []core.Quote
		categories []core.Category

		mu  sync.Mutex
		rng *rand.Rand
	}

	// Option configures a Provider.
	Option func(*Provider)

	document struct {
		Categories []core.Category `yaml:"categories"`
		Quotes     []core.Quote    `yaml:"quotes"`
	}
)

// WithRand replaces the random source used by Random.
func WithRand(rng *rand.Rand) Option {
	return func(p *Provider) {
		p.rng = rng
	}
}

// New returns a provider over the bundled dataset.
func New(opts ...Option) (*Provider, error) {
	return Parse(dataset, opts...)
}

// Parse returns a provider over a YAML dataset with top-level "categories"
// and "quotes" lists. The dataset must contain at least one quote.
func Parse(data []byte, opts ...Option) (*Provider, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	if len(doc.Quotes) == 0 {
		return nil, fmt.Errorf("decode quotes: dataset is empty")
	}
	for i, q := range doc.Quotes {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("decode quotes: entry %d has no text", i)
		}
	}

	p := &Provider{
		quotes:     doc.Quotes,
		categories: doc.Categories,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Random returns a uniformly chosen quote.
func (p *Provider) Random() core.Quote {
	p.mu.Lock()
	i := p.rng.Intn(len(p.quotes))
	p.mu.Unlock()
	return p.quotes[i]
}

// All returns every quote in dataset order.
func (p *Provider) All() []core.Quote {
	return append([]core.Quote(nil), p.quotes...)
}

// ByAuthor returns the quotes whose author contains name, ignoring case.
func (p *Provider) ByAuthor(name string) []core.Quote {
	name = strings.ToLower(name)
	return p.filter(func(q core.Quote) bool {
		return q.Author != "" && strings.Contains(strings.ToLower(q.Author), name)
	})
}

// Search returns the quotes whose text or author contains term, ignoring case.
// An empty term matches everything.
func (p *Provider) Search(term string) []core.Quote {
	term = strings.ToLower(term)
	return p.filter(func(q core.Quote) bool {
		return strings.Contains(strings.ToLower(q.Text), term) ||
			(q.Author != "" && strings.Contains(strings.ToLower(q.Author), term))
	})
}

// Categories returns the quote categories in display order.
func (p *Provider) Categories() []core.Category {
	return append([]core.Category(nil), p.categories...)
}

// ByCategory returns the quotes tagged with the category id.
func (p *Provider) ByCategory(id string) []core.Quote {
	return p.filter(func(q core.Quote) bool {
		return strings.EqualFold(q.Category, id)
	})
}

func (p *Provider) filter(keep func(core.Quote) bool) []core.Quote {
	out := []core.Quote{}
	for _, q := range p.quotes {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
