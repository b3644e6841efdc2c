package dataset

import (
	"strings"

	"innovata/internal/models"
)

// ViewState is the user's current selection: one facet value and a free-text
// search term. The zero value means "nothing selected".
type ViewState struct {
	Facet  string `json:"facet"`
	Search string `json:"search"`
}

// Resolve defaults an empty facet to the first available one.
func (s ViewState) Resolve(facets []string) ViewState {
	if s.Facet == "" && len(facets) > 0 {
		s.Facet = facets[0]
	}
	return s
}

// View is the visible subset of a dataset together with the options that
// produced it.
type View[T any] struct {
	Items  []T       `json:"items"`
	Facets []string  `json:"facets"`
	State  ViewState `json:"state"`
	Total  int       `json:"total"`
}

// Selector knows which field of an item is its facet and which fields are
// searched. A nil FacetOf disables faceting, a nil SearchOf disables search.
type Selector[T any] struct {
	FacetOf  func(T) string
	SearchOf func(T) []string
}

// Select derives the visible items. It is pure: the same inputs always give
// the same view, and nothing is fetched.
func (s Selector[T]) Select(items []T, state ViewState) View[T] {
	facets := Facets(items, s.FacetOf)
	state = state.Resolve(facets)
	if s.FacetOf == nil {
		state.Facet = ""
	}
	if s.SearchOf == nil {
		state.Search = ""
	}

	needle := strings.ToLower(strings.TrimSpace(state.Search))
	visible := make([]T, 0, len(items))
	for _, item := range items {
		if state.Facet != "" && s.FacetOf(item) != state.Facet {
			continue
		}
		if needle != "" && !s.matches(item, needle) {
			continue
		}
		visible = append(visible, item)
	}

	return View[T]{
		Items:  visible,
		Facets: facets,
		State:  state,
		Total:  len(items),
	}
}

func (s Selector[T]) matches(item T, needle string) bool {
	for _, field := range s.SearchOf(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FormatsView is the guideline links of the selected phase.
type FormatsView struct {
	Scheme string                 `json:"scheme"`
	Phases []string               `json:"phases"`
	Phase  string                 `json:"phase"`
	Links  []models.GuidelineLink `json:"links"`
}

// SelectFormats picks the phase to display, defaulting to the first one in
// descending order.
func SelectFormats(f models.Formats, phase string) FormatsView {
	phases := make([]string, len(f.Available))
	copy(phases, f.Available)
	SortDescending(phases)

	state := ViewState{Facet: phase}.Resolve(phases)
	links := f.Links(state.Facet)
	if links == nil {
		links = []models.GuidelineLink{}
	}

	return FormatsView{
		Scheme: f.Scheme,
		Phases: phases,
		Phase:  state.Facet,
		Links:  links,
	}
}

// FacetParams names the query parameter holding each dataset's facet.
// Announcements have no facet.
var FacetParams = map[string]string{
	Projects: "scheme",
	Prizes:   "year",
	Formats:  "phase",
}
