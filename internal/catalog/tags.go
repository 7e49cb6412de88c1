package catalog

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

const classifyChunk = 256

type taxonomyTag struct {
	tag      Tag
	keywords []string
}

// TagClassifier assigns taxonomy tags to product names.
type TagClassifier struct {
	entries []taxonomyTag
}

func NewTagClassifier(taxonomy []TaxonomyEntry) (*TagClassifier, error) {
	if err := validateTaxonomy(taxonomy); err != nil {
		return nil, err
	}
	c := &TagClassifier{entries: make([]taxonomyTag, 0, len(taxonomy))}
	for i, e := range taxonomy {
		kws := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			kws = append(kws, strings.ToUpper(strings.TrimSpace(kw)))
		}
		c.entries = append(c.entries, taxonomyTag{
			tag:      Tag{ID: i + 1, Name: strings.TrimSpace(e.Name)},
			keywords: kws,
		})
	}
	return c, nil
}

// Tags returns the taxonomy tags with their ids.
func (c *TagClassifier) Tags() []Tag {
	tags := make([]Tag, len(c.entries))
	for i, e := range c.entries {
		tags[i] = e.tag
	}
	return tags
}

// Classify returns the tags matching name, in taxonomy order.
func (c *TagClassifier) Classify(name string) []Tag {
	text := strings.ToUpper(name)
	var tags []Tag
	for _, e := range c.entries {
		for _, kw := range e.keywords {
			if matchesWordPrefix(text, kw) {
				tags = append(tags, e.tag)
				break
			}
		}
	}
	return tags
}

// Link classifies every product. Work is split across goroutines; the links
// come back ordered by product position, then taxonomy order.
func (c *TagClassifier) Link(ctx context.Context, products []Product) ([]ProductTagLink, error) {
	found := make([][]Tag, len(products))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for start := 0; start < len(products); start += classifyChunk {
		end := min(start+classifyChunk, len(products))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				found[i] = c.Classify(products[i].Name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var links []ProductTagLink
	for i, tags := range found {
		for _, t := range tags {
			links = append(links, ProductTagLink{ProductID: products[i].ID, TagID: t.ID})
		}
	}
	return links, nil
}

// matchesWordPrefix reports whether keyword occurs in text starting at a word
// boundary. Anything may follow the keyword.
func matchesWordPrefix(text, keyword string) bool {
	first, _ := utf8.DecodeRuneInString(keyword)
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], keyword)
		if i < 0 {
			return false
		}
		pos := offset + i
		prevWord := false
		if pos > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:pos])
			prevWord = isWordRune(prev)
		}
		if prevWord != isWordRune(first) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		offset = pos + size
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
