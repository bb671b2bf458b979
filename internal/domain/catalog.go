package domain

import (
	"context"

	"github.com/habitquest/backend/internal/catalog"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/model"
)

type CatalogDomain interface {
	GetTemplates(context.Context, *model.GetTemplatesRequest) (*model.GetTemplatesResponse, error)
	GetPacks(context.Context, *model.GetPacksRequest) (*model.GetPacksResponse, error)
	GetCategories(context.Context, *model.GetCategoriesRequest) (*model.GetCategoriesResponse, error)
	Search(context.Context, *model.SearchTemplatesRequest) (*model.SearchTemplatesResponse, error)
}

type catalogDomain struct {
	catalog *catalog.Catalog
}

func NewCatalogDomain(cat *catalog.Catalog) CatalogDomain {
	return &catalogDomain{catalog: cat}
}

func (d *catalogDomain) GetTemplates(
	ctx context.Context, req *model.GetTemplatesRequest,
) (*model.GetTemplatesResponse, error) {
	templates := d.catalog.Templates()
	if req.Category != "" {
		filtered := []entity.QuestTemplate{}
		for _, t := range templates {
			if t.Category == req.Category {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	return &model.GetTemplatesResponse{Templates: templates}, nil
}

func (d *catalogDomain) GetPacks(
	ctx context.Context, req *model.GetPacksRequest,
) (*model.GetPacksResponse, error) {
	return &model.GetPacksResponse{Packs: d.catalog.Packs()}, nil
}

func (d *catalogDomain) GetCategories(
	ctx context.Context, req *model.GetCategoriesRequest,
) (*model.GetCategoriesResponse, error) {
	return &model.GetCategoriesResponse{Categories: d.catalog.Categories()}, nil
}

func (d *catalogDomain) Search(
	ctx context.Context, req *model.SearchTemplatesRequest,
) (*model.SearchTemplatesResponse, error) {
	templates, err := d.catalog.Search(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.SearchTemplatesResponse{Templates: templates}, nil
}
