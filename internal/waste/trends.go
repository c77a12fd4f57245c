package waste

import (
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/gorm"

	"wastenot/internal/models"
)

const highWasteItemCount = 5

// TrendAnalysis aggregates a user's stored wastage records: weekly totals,
// totals per food item, and the heaviest-waste items.
type TrendAnalysis struct {
	WeeklyWaste    map[string]float64 `json:"weekly_waste"`
	WasteByItem    map[string]float64 `json:"waste_by_item"`
	HighWasteItems map[string]float64 `json:"high_waste_items"`
}

// AnalyzeTrends aggregates the user's wastage records since the given time.
// Weekly buckets are keyed by the Monday of their week.
func AnalyzeTrends(db *gorm.DB, userID string, since time.Time) (*TrendAnalysis, error) {
	var records []models.WastageRecord
	err := db.Where("user_id = ? AND date >= ?", userID, since).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wastage records: %w", err)
	}

	weekly := make(map[string]float64)
	byItem := make(map[string]float64)
	for _, rec := range records {
		weekly[weekStart(rec.Date).Format("2006-01-02")] += rec.Quantity
		byItem[rec.FoodItem] += rec.Quantity
	}

	return &TrendAnalysis{
		WeeklyWaste:    weekly,
		WasteByItem:    byItem,
		HighWasteItems: topItems(byItem, highWasteItemCount),
	}, nil
}

// weekStart returns the Monday of t's week
func weekStart(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// topItems keeps the n highest-quantity entries. Ties break alphabetically
// so the result is deterministic.
func topItems(totals map[string]float64, n int) map[string]float64 {
	type itemTotal struct {
		item  string
		total float64
	}

	sorted := make([]itemTotal, 0, len(totals))
	for item, total := range totals {
		sorted = append(sorted, itemTotal{item: item, total: total})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].total != sorted[j].total {
			return sorted[i].total > sorted[j].total
		}
		return sorted[i].item < sorted[j].item
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	top := make(map[string]float64, len(sorted))
	for _, it := range sorted {
		top[it.item] = it.total
	}
	return top
}
