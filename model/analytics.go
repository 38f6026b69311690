package model

import "time"

// FilterEvent records one listing request for analytics tracking
type FilterEvent struct {
	Catalog      string              `json:"catalog"`
	Query        string              `json:"query"`
	Selections   map[string][]string `json:"selections,omitempty"` // facet name -> selected values
	ResponseTime time.Duration       `json:"response_time"`
	ResultCount  int                 `json:"result_count"`
	Timestamp    time.Time           `json:"timestamp"`
}

// PopularQuery represents aggregated data for popular search terms
type PopularQuery struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
	TrendChange string `json:"trend_change,omitempty"` // "up", "down", "stable"
}

// FacetUsage counts how often a facet value was selected
type FacetUsage struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CatalogStats represents usage statistics for a specific catalog
type CatalogStats struct {
	Catalog        string  `json:"catalog"`
	RecordCount    int     `json:"record_count"`
	FilterCount    int     `json:"filter_count"`
	EmptyResults   int     `json:"empty_results"`
	AvgResultCount float64 `json:"avg_result_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	BucketUnder1ms   int     `json:"bucket_under_1ms"`
	Bucket1To5ms     int     `json:"bucket_1_5ms"`
	Bucket5To25ms    int     `json:"bucket_5_25ms"`
	Bucket25msPlus   int     `json:"bucket_25ms_plus"`
	PercentageUnder1 float64 `json:"percentage_under_1"`
	Percentage1To5   float64 `json:"percentage_1_5"`
	Percentage5To25  float64 `json:"percentage_5_25"`
	Percentage25Plus float64 `json:"percentage_25_plus"`
}

// FilterPerformanceHourly represents hourly filter activity
type FilterPerformanceHourly struct {
	Hour            int   `json:"hour"`
	FilterCount     int   `json:"filter_count"`
	AvgResponseTime int64 `json:"avg_response_time_us"` // in microseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics
	TotalFilters         int     `json:"total_filters"`
	FiltersChangePercent float64 `json:"filters_change_percent"`
	AvgResponseTime      int64   `json:"avg_response_time_us"` // in microseconds
	ResponseTimeChange   string  `json:"response_time_change"`
	EmptyResultRate      float64 `json:"empty_result_rate_percent"`

	// Detailed analytics
	Performance24h           []FilterPerformanceHourly `json:"performance_24h"`
	PopularQueries           []PopularQuery            `json:"popular_queries"`
	ZeroResultQueries        []PopularQuery            `json:"zero_result_queries"`
	PopularFacets            []FacetUsage              `json:"popular_facets"`
	CatalogUsage             []CatalogStats            `json:"catalog_usage"`
	ResponseTimeDistribution ResponseTimeDistribution  `json:"response_time_distribution"`
}
