package report

import "incomecli/internal/render"

// chartSpec pairs an aggregation with its chart configuration.
type chartSpec struct {
	groupColumns []string
	labelColumn  string
	topN         int // 0 disables truncation
	kind         render.Kind
	config       render.ChartConfig
}

// catalog is the fixed set of charts produced by an analysis run. Rank-based
// palette assignment means the first income level encountered always takes
// the first color, regardless of its value.
var catalog = []chartSpec{
	{
		groupColumns: []string{"income"},
		labelColumn:  "income",
		kind:         render.KindPie,
		config: render.ChartConfig{
			Title: "Income level distribution",
			Slug:  "income_distribution",
		},
	},
	{
		groupColumns: []string{"age_group"},
		labelColumn:  "income",
		kind:         render.KindGroupedBar,
		config: render.ChartConfig{
			Title:      "Income level by age group",
			Slug:       "income_by_age_group",
			XField:     "age_group",
			ColorField: "income",
			TextFormat: "%.2f%%",
		},
	},
	{
		groupColumns: []string{"native_region"},
		labelColumn:  "income",
		kind:         render.KindGroupedBar,
		config: render.ChartConfig{
			Title:      "Income level by native region",
			Slug:       "income_by_native_region",
			XField:     "native_region",
			ColorField: "income",
			TextFormat: "%.2f%%",
		},
	},
	{
		groupColumns: []string{"race"},
		labelColumn:  "income",
		kind:         render.KindHorizontalBar,
		config: render.ChartConfig{
			Title:      "Income level by race",
			Slug:       "income_by_race",
			XField:     "race",
			ColorField: "income",
			TextFormat: "%.2f%%",
		},
	},
	{
		groupColumns: []string{"education_level", "occupation_grouped"},
		labelColumn:  "income",
		// Ranked by absolute bucket count, not by within-group share; the
		// percentage text still shows the share.
		topN: 10,
		kind: render.KindHorizontalBar,
		config: render.ChartConfig{
			Title:      "Top education and occupation combinations",
			Slug:       "top_education_occupation",
			ColorField: "income",
			TextFormat: "%.2f%%",
			Height:     600,
		},
	},
}
