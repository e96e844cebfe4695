package advertisementdto

type PurchaseInput struct {
	SellerID  string
	ProductID string
	PackageID string
}
