package request

type PurchaseAdvertisementRequest struct {
	ProductID string `json:"productId"`
	PackageID string `json:"packageId"`
}
