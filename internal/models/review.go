package models

import (
	"bytes"
	"encoding/json"
)

// ReviewRecord is a review as returned by /api/reviews/company/{companyId}.
type ReviewRecord struct {
	ID            FlexID        `json:"id"`
	Rating        Number        `json:"rating"`
	Likes         Number        `json:"likes"`
	Comment       string        `json:"comment"`
	Keywords      []Keyword     `json:"keywords"`
	Images        []ReviewImage `json:"images"`
	CreatedAt     Timestamp     `json:"createdAt"`
	OwnerNickName string        `json:"ownerNickName"`
}

// Keyword arrives either as a plain string or as an object.
type Keyword struct {
	ID          FlexID `json:"id,omitempty"`
	Label       string `json:"label,omitempty"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
}

func (k *Keyword) UnmarshalJSON(data []byte) error {
	*k = Keyword{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &k.Label)
	}
	type plain Keyword
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*k = Keyword(p)
	return nil
}

// Text is the display text of the keyword.
func (k Keyword) Text() string {
	if k.Label != "" {
		return k.Label
	}
	return k.Name
}

type ReviewImage struct {
	FilePath string `json:"filePath"`
}

// ReviewStats is the aggregate shown above a company's review list.
type ReviewStats struct {
	TotalReviews       int     `json:"totalReviews"`
	AverageRating      float64 `json:"averageRating"`
	RatingDistribution [5]int  `json:"ratingDistribution"`
	TotalLikes         float64 `json:"totalLikes"`
}

// ReviewSummary is a fetched page of reviews with its stats. Error carries
// the load failure message; Reviews and Stats are then in their zero state.
type ReviewSummary struct {
	Reviews []ReviewRecord `json:"reviews"`
	Stats   ReviewStats    `json:"stats"`
	Error   string         `json:"error,omitempty"`
}

// ReviewInput is the body of POST /api/reviews.
type ReviewInput struct {
	ReservationID int64   `json:"reservationId" validate:"gt=0"`
	CompanyID     int64   `json:"companyId" validate:"gt=0"`
	Rating        int     `json:"rating" validate:"gte=1,lte=5"`
	Comment       string  `json:"comment" validate:"max=1000"`
	KeywordIDs    []int64 `json:"keywordIds"`
	ServiceType   string  `json:"serviceType,omitempty"`
}

// ReviewForm is what the review page needs before the user writes anything.
type ReviewForm struct {
	ProductName string    `json:"productName"`
	ServiceType string    `json:"serviceType"`
	Keywords    []Keyword `json:"keywords"`
}
