package handlers

import (
	"context"
	"net/http"
	"strconv"

	advertisementRequest "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/advertisement/request"
	advertisementResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/advertisement/response"
	walletResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/wallet/response"
	withdrawalRequest "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/withdrawal/request"
	withdrawalResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/withdrawal/response"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/usecase"
	advertisementdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/advertisement"
	withdrawaldto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/withdrawal"
	"github.com/gin-gonic/gin"
)

// HTTPSettlementHandler serves the seller-facing REST API.
type HTTPSettlementHandler struct {
	walletUsecase        usecase.WalletUsecase
	commissionUsecase    usecase.CommissionUsecase
	withdrawalUsecase    usecase.WithdrawalUsecase
	advertisementUsecase usecase.AdvertisementUsecase
	sellerUsecase        usecase.SellerUsecase
}

func NewHTTPSettlementHandler(
	walletUsecase usecase.WalletUsecase,
	commissionUsecase usecase.CommissionUsecase,
	withdrawalUsecase usecase.WithdrawalUsecase,
	advertisementUsecase usecase.AdvertisementUsecase,
	sellerUsecase usecase.SellerUsecase,
) *HTTPSettlementHandler {
	return &HTTPSettlementHandler{
		walletUsecase:        walletUsecase,
		commissionUsecase:    commissionUsecase,
		withdrawalUsecase:    withdrawalUsecase,
		advertisementUsecase: advertisementUsecase,
		sellerUsecase:        sellerUsecase,
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// GET /v1/sellers/:sellerId/wallet
func (h *HTTPSettlementHandler) GetWallet(c *gin.Context) {
	wallet, err := h.walletUsecase.GetWallet(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToWalletResponse(wallet))
}

// GET /v1/sellers/:sellerId/transactions
func (h *HTTPSettlementHandler) ListTransactions(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := h.walletUsecase.ListTransactions(c.Request.Context(), c.Param("sellerId"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := walletResponse.TransactionsResponse{
		Transactions: make([]walletResponse.TransactionResponse, 0, len(out.Transactions)),
		Total:        out.Total,
		Page:         out.Page,
		Limit:        out.Limit,
	}
	for _, tx := range out.Transactions {
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/sellers/:sellerId/commissions
func (h *HTTPSettlementHandler) ListCommissions(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := h.commissionUsecase.ListBySeller(c.Request.Context(), c.Param("sellerId"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := walletResponse.CommissionsResponse{
		Commissions: make([]walletResponse.CommissionResponse, 0, len(out.Commissions)),
		Total:       out.Total,
		Page:        out.Page,
		Limit:       out.Limit,
	}
	for _, commission := range out.Commissions {
		resp.Commissions = append(resp.Commissions, ToCommissionResponse(commission))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /v1/sellers/:sellerId/withdrawals
func (h *HTTPSettlementHandler) CreateWithdrawal(c *gin.Context) {
	var req withdrawalRequest.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	request, err := h.withdrawalUsecase.Create(c.Request.Context(), withdrawaldto.CreateInput{
		SellerID:    c.Param("sellerId"),
		Amount:      req.Amount,
		BankAccount: ToDomainBankAccount(req.BankAccount),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ToWithdrawalResponse(request))
}

// GET /v1/sellers/:sellerId/withdrawals
func (h *HTTPSettlementHandler) ListWithdrawals(c *gin.Context) {
	requests, err := h.withdrawalUsecase.ListBySeller(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := withdrawalResponse.WithdrawalsResponse{Withdrawals: make([]withdrawalResponse.WithdrawalResponse, 0, len(requests))}
	for _, request := range requests {
		resp.Withdrawals = append(resp.Withdrawals, ToWithdrawalResponse(request))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/withdrawals/:id
func (h *HTTPSettlementHandler) GetWithdrawal(c *gin.Context) {
	request, err := h.withdrawalUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToWithdrawalResponse(request))
}

// GET /v1/sellers/:sellerId/bank-account
func (h *HTTPSettlementHandler) GetBankAccount(c *gin.Context) {
	account, err := h.sellerUsecase.GetBankAccount(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToBankAccountResponse(*account))
}

// PUT /v1/sellers/:sellerId/bank-account
func (h *HTTPSettlementHandler) UpdateBankAccount(c *gin.Context) {
	var req withdrawalRequest.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	account, err := h.sellerUsecase.UpdateBankAccount(c.Request.Context(), c.Param("sellerId"), *ToDomainBankAccount(&req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToBankAccountResponse(*account))
}

// GET /v1/advertisement-packages
func (h *HTTPSettlementHandler) ListPackages(c *gin.Context) {
	packages := h.advertisementUsecase.ListPackages()
	resp := advertisementResponse.PackagesResponse{Packages: make([]advertisementResponse.PackageResponse, 0, len(packages))}
	for _, pkg := range packages {
		resp.Packages = append(resp.Packages, ToPackageResponse(pkg))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /v1/sellers/:sellerId/advertisements
func (h *HTTPSettlementHandler) PurchaseAdvertisement(c *gin.Context) {
	var req advertisementRequest.PurchaseAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	ad, err := h.advertisementUsecase.PurchasePackage(c.Request.Context(), advertisementdto.PurchaseInput{
		SellerID:  c.Param("sellerId"),
		ProductID: req.ProductID,
		PackageID: req.PackageID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ToAdvertisementResponse(ad))
}

// GET /v1/sellers/:sellerId/advertisements
func (h *HTTPSettlementHandler) ListAdvertisements(c *gin.Context) {
	ads, err := h.advertisementUsecase.ListBySeller(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := advertisementResponse.AdvertisementsResponse{Advertisements: make([]advertisementResponse.AdvertisementResponse, 0, len(ads))}
	for _, ad := range ads {
		resp.Advertisements = append(resp.Advertisements, ToAdvertisementResponse(ad))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPSettlementHandler) PauseAdvertisement(c *gin.Context) {
	h.changeAdvertisement(c, h.advertisementUsecase.Pause)
}

func (h *HTTPSettlementHandler) ResumeAdvertisement(c *gin.Context) {
	h.changeAdvertisement(c, h.advertisementUsecase.Resume)
}

func (h *HTTPSettlementHandler) CancelAdvertisement(c *gin.Context) {
	h.changeAdvertisement(c, h.advertisementUsecase.Cancel)
}

// GET /v1/advertisements/:id
func (h *HTTPSettlementHandler) GetAdvertisement(c *gin.Context) {
	ad, err := h.advertisementUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToAdvertisementResponse(ad))
}

func (h *HTTPSettlementHandler) RecordImpression(c *gin.Context) {
	h.changeAdvertisement(c, h.advertisementUsecase.RecordImpression)
}

func (h *HTTPSettlementHandler) RecordClick(c *gin.Context) {
	h.changeAdvertisement(c, h.advertisementUsecase.RecordClick)
}

// DELETE /v1/advertisements/:id
func (h *HTTPSettlementHandler) DeleteAdvertisement(c *gin.Context) {
	if err := h.advertisementUsecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type advertisementChange func(ctx context.Context, adID string) (*domain.Advertisement, error)

func (h *HTTPSettlementHandler) changeAdvertisement(c *gin.Context, change advertisementChange) {
	ad, err := change(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToAdvertisementResponse(ad))
}
