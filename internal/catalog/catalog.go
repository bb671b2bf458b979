package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/enum"
	"github.com/habitquest/backend/pkg/xcontext"
)

// StarterPackID is the pack seeded into every brand-new queue.
const StarterPackID = "starter"

// Catalog is the static quest content, loaded once at startup from TOML and
// immutable afterwards. All accessors return copies.
type Catalog struct {
	templates     map[string]entity.QuestTemplate
	templateOrder []string
	packs         map[string]entity.QuestPack
	packOrder     []string
	categories    []entity.Category

	index *searchIndex
}

type templatesFile struct {
	Templates []entity.QuestTemplate `toml:"templates"`
}

type packsFile struct {
	Packs []entity.QuestPack `toml:"packs"`
}

type categoriesFile struct {
	Categories []entity.Category `toml:"categories"`
}

// Load reads templates.toml, packs.toml, and categories.toml from dir and
// validates cross-references before anything is served.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	var tf templatesFile
	if _, err := toml.DecodeFile(filepath.Join(dir, "templates.toml"), &tf); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	var pf packsFile
	if _, err := toml.DecodeFile(filepath.Join(dir, "packs.toml"), &pf); err != nil {
		return nil, fmt.Errorf("load packs: %w", err)
	}

	var cf categoriesFile
	if _, err := toml.DecodeFile(filepath.Join(dir, "categories.toml"), &cf); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	c := &Catalog{
		templates:  make(map[string]entity.QuestTemplate, len(tf.Templates)),
		packs:      make(map[string]entity.QuestPack, len(pf.Packs)),
		categories: cf.Categories,
	}

	categoryIDs := map[string]bool{}
	for _, cat := range cf.Categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("category with empty id")
		}
		categoryIDs[cat.ID] = true
	}

	for _, t := range tf.Templates {
		if err := validateTemplate(t, categoryIDs); err != nil {
			return nil, err
		}
		if _, ok := c.templates[t.ID]; ok {
			return nil, fmt.Errorf("duplicate template id %s", t.ID)
		}

		c.templates[t.ID] = t
		c.templateOrder = append(c.templateOrder, t.ID)
	}

	for _, p := range pf.Packs {
		if _, ok := c.packs[p.ID]; ok {
			return nil, fmt.Errorf("duplicate pack id %s", p.ID)
		}
		for _, id := range p.TemplateIDs {
			if _, ok := c.templates[id]; !ok {
				return nil, fmt.Errorf("pack %s references unknown template %s", p.ID, id)
			}
		}

		c.packs[p.ID] = p
		c.packOrder = append(c.packOrder, p.ID)
	}

	index, err := newSearchIndex(c.orderedTemplates())
	if err != nil {
		return nil, fmt.Errorf("build search index: %w", err)
	}
	c.index = index

	xcontext.Logger(ctx).Infof(
		"Loaded catalog: %d templates, %d packs, %d categories",
		len(c.templates), len(c.packs), len(c.categories),
	)

	return c, nil
}

func validateTemplate(t entity.QuestTemplate, categoryIDs map[string]bool) error {
	if t.ID == "" {
		return fmt.Errorf("template with empty id")
	}
	if !categoryIDs[t.Category] {
		return fmt.Errorf("template %s references unknown category %s", t.ID, t.Category)
	}
	if !enum.IsValid[entity.Difficulty](string(t.Difficulty)) {
		return fmt.Errorf("template %s has invalid difficulty %s", t.ID, t.Difficulty)
	}
	if !enum.IsValid[entity.ProofType](string(t.ProofType)) {
		return fmt.Errorf("template %s has invalid proof type %s", t.ID, t.ProofType)
	}
	if !enum.IsValid[entity.RecurrenceType](string(t.Recurrence)) {
		return fmt.Errorf("template %s has invalid recurrence %s", t.ID, t.Recurrence)
	}
	if t.BaseXP <= 0 {
		return fmt.Errorf("template %s has non-positive base xp", t.ID)
	}

	return nil
}

func (c *Catalog) orderedTemplates() []entity.QuestTemplate {
	result := make([]entity.QuestTemplate, 0, len(c.templateOrder))
	for _, id := range c.templateOrder {
		result = append(result, c.templates[id])
	}

	return result
}

func (c *Catalog) Templates() []entity.QuestTemplate {
	return c.orderedTemplates()
}

func (c *Catalog) Template(id string) (entity.QuestTemplate, bool) {
	t, ok := c.templates[id]
	return t, ok
}

func (c *Catalog) Packs() []entity.QuestPack {
	result := make([]entity.QuestPack, 0, len(c.packOrder))
	for _, id := range c.packOrder {
		result = append(result, c.packs[id])
	}

	return result
}

func (c *Catalog) Pack(id string) (entity.QuestPack, bool) {
	p, ok := c.packs[id]
	return p, ok
}

func (c *Catalog) Categories() []entity.Category {
	result := make([]entity.Category, len(c.categories))
	copy(result, c.categories)
	return result
}

func (c *Catalog) CategoryIDs() []string {
	result := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		result = append(result, cat.ID)
	}

	return result
}

// Starters returns the templates of the starter pack, in pack order. An
// absent starter pack yields an empty set, not an error.
func (c *Catalog) Starters() []entity.QuestTemplate {
	pack, ok := c.packs[StarterPackID]
	if !ok {
		return nil
	}

	result := make([]entity.QuestTemplate, 0, len(pack.TemplateIDs))
	for _, id := range pack.TemplateIDs {
		result = append(result, c.templates[id])
	}

	return result
}
