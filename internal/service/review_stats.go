package service

import (
	"math"

	"petmate/internal/models"
)

// AggregateReviews computes the header stats for a page of reviews. Every
// review counts toward the total and the average; only whole ratings 1..5
// land in the histogram.
func AggregateReviews(reviews []models.ReviewRecord) models.ReviewStats {
	var stats models.ReviewStats
	if len(reviews) == 0 {
		return stats
	}

	var sum float64
	for _, r := range reviews {
		rating := float64(r.Rating)
		sum += rating
		stats.TotalLikes += float64(r.Likes)

		if rating >= 1 && rating <= 5 && rating == math.Trunc(rating) {
			stats.RatingDistribution[int(rating)-1]++
		}
	}

	stats.TotalReviews = len(reviews)
	stats.AverageRating = math.Round(sum/float64(len(reviews))*10) / 10
	return stats
}
