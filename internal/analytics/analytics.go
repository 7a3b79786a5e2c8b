// Package analytics derives the chart aggregations from store views. All
// functions are pure; nothing here holds state.
package analytics

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/jonathan/hr-dashboard/internal/employee"
)

// DepartmentStat is one bar of the department performance chart.
type DepartmentStat struct {
	Department employee.Department `json:"name"`
	AvgRating  float64             `json:"avgRating"`
	Count      int                 `json:"count"`
}

// DepartmentPerformance groups the full set by department and computes the
// arithmetic mean performance (rounded to one decimal) and member count per
// group, sorted descending by mean. Ties break by department name so the
// output is deterministic.
func DepartmentPerformance(employees []employee.Employee) []DepartmentStat {
	type acc struct {
		total int
		count int
	}
	byDept := make(map[employee.Department]*acc)
	for _, e := range employees {
		a := byDept[e.Department]
		if a == nil {
			a = &acc{}
			byDept[e.Department] = a
		}
		a.total += e.Performance
		a.count++
	}

	stats := make([]DepartmentStat, 0, len(byDept))
	for dept, a := range byDept {
		avg := math.Round(float64(a.total)/float64(a.count)*10) / 10
		stats = append(stats, DepartmentStat{
			Department: dept,
			AvgRating:  avg,
			Count:      a.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgRating != stats[j].AvgRating {
			return stats[i].AvgRating > stats[j].AvgRating
		}
		return stats[i].Department < stats[j].Department
	})
	return stats
}

// TopPerformers returns the first n employees after a stable descending
// sort by performance score. Ties keep the full set's original order.
func TopPerformers(employees []employee.Employee, n int) []employee.Employee {
	sorted := append([]employee.Employee(nil), employees...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Performance > sorted[j].Performance
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TrendPoint is one month of the synthesized bookmark trend series.
type TrendPoint struct {
	Month        string `json:"month"`
	Bookmarks    int    `json:"bookmarks"`
	Interactions int    `json:"interactions"`
}

var trendMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// BookmarkTrends synthesizes a monthly series for the current year leading
// up to the live bookmark count: earlier months scale the count by elapsed
// fraction with ±15% jitter, and the final point is exactly the current
// count. The series is illustrative, not derived from history.
func BookmarkTrends(bookmarkCount int, now time.Time, rng *rand.Rand) []TrendPoint {
	current := int(now.Month()) - 1
	points := make([]TrendPoint, 0, current+1)
	for i := 0; i <= current; i++ {
		n := bookmarkCount
		if i != current {
			factor := float64(i) / float64(current)
			variation := rng.Float64()*0.3 - 0.15
			n = int(math.Round(float64(bookmarkCount) * factor * (1 + variation)))
			if n < 0 {
				n = 0
			}
		}
		points = append(points, TrendPoint{
			Month:        trendMonths[i],
			Bookmarks:    n,
			Interactions: int(math.Round(float64(n) * (2 + rng.Float64()))),
		})
	}
	return points
}
