package analytics

import (
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/internal/persistence"
	"github.com/gcbaptista/go-portfolio/model"
	"github.com/gcbaptista/go-portfolio/services"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topN            = 5
)

// Service implements filter analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	saveMutex    sync.Mutex
	events       []model.FilterEvent
	dirty        bool // events changed since the last snapshot
	catalogs     services.CatalogProvider
	dataFilePath string
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates a new analytics service. Events are snapshotted to dataFilePath
// by Flush, which the caller schedules; an empty path keeps them in memory only.
func NewService(catalogs services.CatalogProvider, dataFilePath string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	service := &Service{
		events:       make([]model.FilterEvent, 0),
		catalogs:     catalogs,
		dataFilePath: dataFilePath,
		logger:       logger.Named("analytics"),
		now:          time.Now,
	}

	if err := service.loadData(); err != nil {
		service.logger.Warn("Failed to load analytics data", zap.Error(err))
	}

	return service
}

// TrackFilterEvent records a new filter event
func (s *Service) TrackFilterEvent(event model.FilterEvent) error {
	s.mutex.Lock()
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	event.Query = strings.TrimSpace(event.Query)
	s.events = append(s.events, event)
	s.dirty = true

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	s.mutex.Unlock()

	return nil
}

// Flush writes the current events to the data file if they changed since the
// last successful write.
func (s *Service) Flush() error {
	if s.dataFilePath == "" {
		return nil
	}

	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	s.mutex.Lock()
	if !s.dirty {
		s.mutex.Unlock()
		return nil
	}
	snapshot := make([]model.FilterEvent, len(s.events))
	copy(snapshot, s.events)
	s.dirty = false
	s.mutex.Unlock()

	if err := persistence.SaveGob(s.dataFilePath, snapshot); err != nil {
		s.mutex.Lock()
		s.dirty = true
		s.mutex.Unlock()
		return err
	}
	return nil
}

// Close writes a final snapshot
func (s *Service) Close() error {
	return s.Flush()
}

// EventCount returns the number of retained events
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	last24hEvents := filterEventsByTime(s.events, yesterday)
	prev24hEvents := filterEventsByTimeRange(s.events, yesterday.Add(-24*time.Hour), yesterday)
	lastWeekEvents := filterEventsByTime(s.events, lastWeek)

	dashboard := model.AnalyticsDashboard{
		TotalFilters:             len(last24hEvents),
		FiltersChangePercent:     calculateChangePercent(len(last24hEvents), len(prev24hEvents)),
		AvgResponseTime:          calculateAvgResponseTime(last24hEvents),
		ResponseTimeChange:       calculateResponseTimeChange(last24hEvents, prev24hEvents),
		EmptyResultRate:          emptyResultRate(last24hEvents),
		Performance24h:           getHourlyPerformance(last24hEvents),
		PopularQueries:           getPopularQueries(lastWeekEvents, false),
		ZeroResultQueries:        getPopularQueries(lastWeekEvents, true),
		PopularFacets:            getPopularFacets(lastWeekEvents),
		CatalogUsage:             s.getCatalogUsage(lastWeekEvents),
		ResponseTimeDistribution: getResponseTimeDistribution(last24hEvents),
	}

	return dashboard, nil
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.FilterEvent, after time.Time) []model.FilterEvent {
	var filtered []model.FilterEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// filterEventsByTimeRange returns events within the given time range
func filterEventsByTimeRange(events []model.FilterEvent, start, end time.Time) []model.FilterEvent {
	var filtered []model.FilterEvent
	for _, event := range events {
		if event.Timestamp.After(start) && !event.Timestamp.After(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAvgResponseTime calculates average response time for events in microseconds
func calculateAvgResponseTime(events []model.FilterEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Microseconds()
}

// calculateResponseTimeChange calculates response time change trend
func calculateResponseTimeChange(current, previous []model.FilterEvent) string {
	currentAvg := calculateAvgResponseTime(current)
	previousAvg := calculateAvgResponseTime(previous)

	if previousAvg == 0 {
		return "stable"
	}

	change := float64(currentAvg-previousAvg) / float64(previousAvg)
	if change > 0.1 {
		return "up"
	} else if change < -0.1 {
		return "down"
	}
	return "stable"
}

func emptyResultRate(events []model.FilterEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	empty := 0
	for _, event := range events {
		if event.ResultCount == 0 {
			empty++
		}
	}
	return float64(empty) / float64(len(events)) * 100
}

// getHourlyPerformance returns hourly filter activity for the last 24 hours
func getHourlyPerformance(events []model.FilterEvent) []model.FilterPerformanceHourly {
	hourlyData := make(map[int][]model.FilterEvent)

	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.FilterPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		events := hourlyData[hour]
		performance = append(performance, model.FilterPerformanceHourly{
			Hour:            hour,
			FilterCount:     len(events),
			AvgResponseTime: calculateAvgResponseTime(events),
		})
	}

	return performance
}

// getPopularQueries returns the most frequent non-empty queries. With zeroOnly set
// it only counts queries that produced no results.
func getPopularQueries(events []model.FilterEvent, zeroOnly bool) []model.PopularQuery {
	queryCounts := make(map[string]int)

	for _, event := range events {
		if event.Query == "" || (zeroOnly && event.ResultCount != 0) {
			continue
		}
		queryCounts[strings.ToLower(event.Query)]++
	}

	popular := make([]model.PopularQuery, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularQuery{Query: query, SearchCount: count, TrendChange: "stable"})
	}

	// Sort by count descending, ties alphabetically so the output is stable
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > topN {
		popular = popular[:topN]
	}
	return popular
}

// getPopularFacets returns the most selected facet values
func getPopularFacets(events []model.FilterEvent) []model.FacetUsage {
	type key struct{ facet, value string }
	counts := make(map[key]int)

	for _, event := range events {
		for facet, values := range event.Selections {
			for _, value := range values {
				counts[key{facet, value}]++
			}
		}
	}

	usage := make([]model.FacetUsage, 0, len(counts))
	for k, count := range counts {
		usage = append(usage, model.FacetUsage{Facet: k.facet, Value: k.value, Count: count})
	}

	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		if usage[i].Facet != usage[j].Facet {
			return usage[i].Facet < usage[j].Facet
		}
		return usage[i].Value < usage[j].Value
	})

	if len(usage) > topN {
		usage = usage[:topN]
	}
	return usage
}

// getCatalogUsage returns usage statistics for each catalog
func (s *Service) getCatalogUsage(events []model.FilterEvent) []model.CatalogStats {
	type acc struct {
		filters, empty, results int
	}
	perCatalog := make(map[string]*acc)
	for _, event := range events {
		a, ok := perCatalog[event.Catalog]
		if !ok {
			a = &acc{}
			perCatalog[event.Catalog] = a
		}
		a.filters++
		a.results += event.ResultCount
		if event.ResultCount == 0 {
			a.empty++
		}
	}

	var names []string
	if s.catalogs != nil {
		names = s.catalogs.CatalogNames()
	}

	usage := make([]model.CatalogStats, 0, len(names))
	for _, name := range names {
		stats := model.CatalogStats{Catalog: name}
		if c, err := s.catalogs.Catalog(name); err == nil {
			stats.RecordCount = c.Len()
		}
		if a, ok := perCatalog[name]; ok {
			stats.FilterCount = a.filters
			stats.EmptyResults = a.empty
			stats.AvgResultCount = float64(a.results) / float64(a.filters)
		}
		usage = append(usage, stats)
	}

	return usage
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.FilterEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch d := event.ResponseTime; {
		case d < time.Millisecond:
			dist.BucketUnder1ms++
		case d < 5*time.Millisecond:
			dist.Bucket1To5ms++
		case d < 25*time.Millisecond:
			dist.Bucket5To25ms++
		default:
			dist.Bucket25msPlus++
		}
	}

	dist.PercentageUnder1 = float64(dist.BucketUnder1ms) / float64(total) * 100
	dist.Percentage1To5 = float64(dist.Bucket1To5ms) / float64(total) * 100
	dist.Percentage5To25 = float64(dist.Bucket5To25ms) / float64(total) * 100
	dist.Percentage25Plus = float64(dist.Bucket25msPlus) / float64(total) * 100

	return dist
}

// loadData loads analytics data from the snapshot file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	var events []model.FilterEvent
	if err := persistence.LoadGob(s.dataFilePath, &events); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // File doesn't exist yet, that's okay
		}
		return err
	}

	if len(events) > maxEventsToKeep {
		events = events[len(events)-maxEventsToKeep:]
	}
	s.events = events
	s.logger.Info("Loaded analytics data", zap.Int("events", len(events)))
	return nil
}
