package schema

import (
	"net/url"
	"strconv"

	"breeder-site-backend/internal/models"
)

// MaxReviewLimit caps the limit query parameter of a review listing
const MaxReviewLimit = 100

// flagParam reads an optional "true"/"false" query parameter
func flagParam(q url.Values, name string) (*bool, error) {
	if !q.Has(name) {
		return nil, nil
	}
	switch q.Get(name) {
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, fieldError(name, "Invalid enum value. Expected 'true' | 'false'")
	}
}

// PuppyFilterFromQuery parses ?availableOnly=true|false
func PuppyFilterFromQuery(q url.Values) (models.PuppyFilter, error) {
	available, err := flagParam(q, "availableOnly")
	if err != nil {
		return models.PuppyFilter{}, err
	}
	return models.PuppyFilter{AvailableOnly: available != nil && *available}, nil
}

// PuppyFilterQuery is the inverse of PuppyFilterFromQuery
func PuppyFilterQuery(f models.PuppyFilter) url.Values {
	q := url.Values{}
	if f.AvailableOnly {
		q.Set("availableOnly", "true")
	}
	return q
}

// ReviewFilterFromQuery parses ?featuredOnly=true|false&limit=N
func ReviewFilterFromQuery(q url.Values) (models.ReviewFilter, error) {
	featured, err := flagParam(q, "featuredOnly")
	if err != nil {
		return models.ReviewFilter{}, err
	}
	f := models.ReviewFilter{FeaturedOnly: featured != nil && *featured}

	if q.Has("limit") {
		n, msg := CoerceInt(q.Get("limit"))
		switch {
		case msg != "":
			return models.ReviewFilter{}, fieldError("limit", msg)
		case n < 1:
			return models.ReviewFilter{}, fieldError("limit", "Number must be greater than or equal to 1")
		case n > MaxReviewLimit:
			return models.ReviewFilter{}, fieldError("limit", "Number must be less than or equal to "+strconv.Itoa(MaxReviewLimit))
		}
		f.Limit = n
	}
	return f, nil
}

// ReviewFilterQuery is the inverse of ReviewFilterFromQuery
func ReviewFilterQuery(f models.ReviewFilter) url.Values {
	q := url.Values{}
	if f.FeaturedOnly {
		q.Set("featuredOnly", "true")
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
