package domain

import "sort"

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// IsValidRating checks whether r lies in [MinRating, MaxRating].
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// RatingStats summarises the reviews of some scope. AverageRating is nil
// when ReviewCount is zero.
type RatingStats struct {
	ReviewCount   int      `json:"review_count"`
	AverageRating *float64 `json:"average_rating"`
}

// NewRatingStats builds stats from a count and an optional mean, dropping
// the mean when there is nothing to average.
func NewRatingStats(count int, avg *float64) RatingStats {
	if count <= 0 {
		return RatingStats{}
	}
	return RatingStats{ReviewCount: count, AverageRating: avg}
}

// RatingCount is one row of a per-rating histogram.
type RatingCount struct {
	Rating int
	Count  int64
}

// RatingBreakdown maps a rating value to the number of reviews with it.
// Absent keys mean zero.
type RatingBreakdown map[int]int64

// BreakdownFrom folds histogram rows into a breakdown. Zero counts are
// skipped and repeated ratings are summed.
func BreakdownFrom(rows []RatingCount) RatingBreakdown {
	b := make(RatingBreakdown, len(rows))
	for _, r := range rows {
		if r.Count <= 0 {
			continue
		}
		b[r.Rating] += r.Count
	}
	return b
}

// Total is the number of reviews counted in b.
func (b RatingBreakdown) Total() int64 {
	var n int64
	for _, c := range b {
		n += c
	}
	return n
}

// Stats derives count and mean from b, so both describe the same snapshot.
func (b RatingBreakdown) Stats() RatingStats {
	total := b.Total()
	if total == 0 {
		return RatingStats{}
	}
	var sum int64
	for rating, c := range b {
		sum += int64(rating) * c
	}
	avg := float64(sum) / float64(total)
	return RatingStats{ReviewCount: int(total), AverageRating: &avg}
}

// Ratings lists the keys of b in ascending order.
func (b RatingBreakdown) Ratings() []int {
	keys := make([]int, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
