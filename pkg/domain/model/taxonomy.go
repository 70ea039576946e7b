package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidTaxonomy is returned when a taxonomy definition is malformed
var ErrInvalidTaxonomy = goerr.New("invalid taxonomy")

// TaxonomyCategory is a broad risk category and its fine-grained hazard labels
type TaxonomyCategory struct {
	Name   string
	Labels []string
}

// Taxonomy maps fine-grained hazard labels to broad risk categories. It is
// read-only after construction.
type Taxonomy struct {
	categories []TaxonomyCategory
	categoryOf map[string]string
	byName     map[string]int
}

// NewTaxonomy builds a Taxonomy preserving category and label order. Category
// names and labels must be non-empty and unique across the whole taxonomy.
func NewTaxonomy(categories []TaxonomyCategory) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make([]TaxonomyCategory, 0, len(categories)),
		categoryOf: make(map[string]string),
		byName:     make(map[string]int),
	}

	for _, cat := range categories {
		if cat.Name == "" {
			return nil, goerr.Wrap(ErrInvalidTaxonomy, "category name is empty")
		}
		if _, exists := t.byName[cat.Name]; exists {
			return nil, goerr.Wrap(ErrInvalidTaxonomy, "duplicate category", goerr.V("category", cat.Name))
		}

		labels := make([]string, 0, len(cat.Labels))
		for _, label := range cat.Labels {
			if label == "" {
				return nil, goerr.Wrap(ErrInvalidTaxonomy, "label is empty", goerr.V("category", cat.Name))
			}
			if owner, exists := t.categoryOf[label]; exists {
				return nil, goerr.Wrap(ErrInvalidTaxonomy, "duplicate label",
					goerr.V("label", label),
					goerr.V("category", cat.Name),
					goerr.V("first_category", owner))
			}
			t.categoryOf[label] = cat.Name
			labels = append(labels, label)
		}

		t.byName[cat.Name] = len(t.categories)
		t.categories = append(t.categories, TaxonomyCategory{Name: cat.Name, Labels: labels})
	}

	return t, nil
}

// DefaultTaxonomy returns the built-in AI risk taxonomy
func DefaultTaxonomy() *Taxonomy {
	t, err := NewTaxonomy(defaultTaxonomyCategories())
	if err != nil {
		panic("built-in taxonomy is invalid: " + err.Error())
	}
	return t
}

func defaultTaxonomyCategories() []TaxonomyCategory {
	return []TaxonomyCategory{
		{Name: "Data Risk", Labels: []string{"Data Quality", "Data Privacy", "Data Drift", "Data Poisoning", "Data Bias", "Data Provenance"}},
		{Name: "Model Risk", Labels: []string{"Algorithmic Bias", "Fairness", "Explainability", "Robustness", "Performance Degradation", "Adversarial Attacks", "Concept Drift", "Model Interpretability"}},
		{Name: "System Risk", Labels: []string{"Security Vulnerability", "Integration Issues", "Infrastructure Failure", "Access Control"}},
		{Name: "Human Risk", Labels: []string{"Operator Error", "Misuse", "Lack of Oversight", "Ethical Misalignment"}},
		{Name: "Organizational Risk", Labels: []string{"Regulatory Non-Compliance", "Reputational Damage", "Lack of Governance", "Third-Party Dependency"}},
	}
}

// Categories returns a copy of all categories in declared order
func (t *Taxonomy) Categories() []TaxonomyCategory {
	result := make([]TaxonomyCategory, len(t.categories))
	for i, cat := range t.categories {
		labels := make([]string, len(cat.Labels))
		copy(labels, cat.Labels)
		result[i] = TaxonomyCategory{Name: cat.Name, Labels: labels}
	}
	return result
}

// CategoryNames returns the broad category names in declared order
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, len(t.categories))
	for i, cat := range t.categories {
		names[i] = cat.Name
	}
	return names
}

// Labels returns the labels of a category, or nil if the category is unknown
func (t *Taxonomy) Labels(category string) []string {
	idx, ok := t.byName[category]
	if !ok {
		return nil
	}
	labels := make([]string, len(t.categories[idx].Labels))
	copy(labels, t.categories[idx].Labels)
	return labels
}

// CategoryOf returns the broad category of a fine-grained label
func (t *Taxonomy) CategoryOf(label string) (string, bool) {
	cat, ok := t.categoryOf[label]
	return cat, ok
}

// IsCategory reports whether name is a broad category
func (t *Taxonomy) IsCategory(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// IsLabel reports whether label is a fine-grained hazard label
func (t *Taxonomy) IsLabel(label string) bool {
	_, ok := t.categoryOf[label]
	return ok
}
