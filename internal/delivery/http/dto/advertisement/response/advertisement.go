package response

import "time"

type PackageResponse struct {
	PackageID    string   `json:"packageId"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	DurationDays int      `json:"durationDays"`
	Price        string   `json:"price"`
	Features     []string `json:"features"`
	Type         string   `json:"type"`
}

type PackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

type AdvertisementResponse struct {
	AdvertisementID string    `json:"advertisementId"`
	SellerID        string    `json:"sellerId"`
	ProductID       string    `json:"productId"`
	PackageID       string    `json:"packageId"`
	Type            string    `json:"type"`
	Cost            string    `json:"cost"`
	DurationDays    int       `json:"durationDays"`
	Status          string    `json:"status"`
	Budget          string    `json:"budget"`
	Spent           string    `json:"spent"`
	Impressions     int64     `json:"impressions"`
	Clicks          int64     `json:"clicks"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
}

type AdvertisementsResponse struct {
	Advertisements []AdvertisementResponse `json:"advertisements"`
}
