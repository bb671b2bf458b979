package catalog

import (
	"context"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
)

// searchIndex is an in-memory bleve index over the catalog. The catalog is
// immutable after load, so the index is built once and never updated.
type searchIndex struct {
	index bleve.Index
}

type searchDoc struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func newSearchIndex(templates []entity.QuestTemplate) (*searchIndex, error) {
	mapping := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, err
	}

	for _, t := range templates {
		doc := searchDoc{
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Tags:        t.Tags,
		}
		if err := index.Index(t.ID, doc); err != nil {
			return nil, err
		}
	}

	return &searchIndex{index: index}, nil
}

// Search runs a free-text query over titles, descriptions, tags, and
// categories and returns matching templates, best first.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]entity.QuestTemplate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errorx.New(errorx.BadRequest, "Empty search query")
	}

	if limit <= 0 {
		limit = 20
	}

	match := bleve.NewMatchQuery(query)
	match.SetFuzziness(1)
	request := bleve.NewSearchRequestOptions(match, limit, 0, false)

	result, err := c.index.index.Search(request)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search catalog: %v", err)
		return nil, errorx.Unknown
	}

	templates := make([]entity.QuestTemplate, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if t, ok := c.templates[hit.ID]; ok {
			templates = append(templates, t)
		}
	}

	return templates, nil
}
