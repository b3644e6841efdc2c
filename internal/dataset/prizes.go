package dataset

import "innovata/internal/models"

// PrizeTable keeps rows carrying a details link, a category or an event name.
func PrizeTable() Table[models.Prize] {
	return Table[models.Prize]{
		Name: Prizes,
		Keep: func(r models.Row) bool {
			return r.Has(models.ColPrizeLink) || r.Has(models.ColPrizeCat) || r.Has(models.ColEventName)
		},
		Normalize: func(r models.Row, _ int) models.Prize {
			return models.Prize{
				Year:         r.First(models.ColYear, models.ColScheme),
				Category:     orDefault(r.First(models.ColPrizeCat, models.ColEventName), models.PrizeCategoryFallback),
				Name:         orDefault(r.Trimmed(models.ColPrizeName), models.PrizeNameFallback),
				Winners:      orDefault(r.Trimmed(models.ColWinners), models.WinnersFallback),
				ProjectTitle: r.Trimmed(models.ColPrizeProject),
				DetailsURL:   safeURL(r.Trimmed(models.ColPrizeLink)),
			}
		},
	}
}

// PrizeSelector filters prizes by year (or scheme) and searches the award text.
var PrizeSelector = Selector[models.Prize]{
	FacetOf: func(p models.Prize) string { return p.Year },
	SearchOf: func(p models.Prize) []string {
		return []string{p.Category, p.Name, p.Winners, p.ProjectTitle}
	},
}
