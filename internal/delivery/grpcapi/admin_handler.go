package grpcapi

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/delivery/grpcapi/mappers"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/usecase"
	commissiondto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/commission"
	walletdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/wallet"
	withdrawaldto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/withdrawal"
	"google.golang.org/protobuf/types/known/structpb"
)

type SettlementAdminHandler struct {
	commissionUsecase usecase.CommissionUsecase
	walletUsecase     usecase.WalletUsecase
	withdrawalUsecase usecase.WithdrawalUsecase
	settlementUsecase usecase.SettlementUsecase
	nowFn             func() time.Time
}

func NewSettlementAdminHandler(
	commissionUsecase usecase.CommissionUsecase,
	walletUsecase usecase.WalletUsecase,
	withdrawalUsecase usecase.WithdrawalUsecase,
	settlementUsecase usecase.SettlementUsecase,
) *SettlementAdminHandler {
	return &SettlementAdminHandler{
		commissionUsecase: commissionUsecase,
		walletUsecase:     walletUsecase,
		withdrawalUsecase: withdrawalUsecase,
		settlementUsecase: settlementUsecase,
		nowFn:             time.Now,
	}
}

var _ SettlementAdminServer = (*SettlementAdminHandler)(nil)

func reply(method string, m map[string]any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(method, err)
	}
	out, err := mappers.ToStruct(m)
	if err != nil {
		return nil, toStatus(method, err)
	}
	return out, nil
}

func (h *SettlementAdminHandler) CalculateCommission(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	amount, err := mappers.Decimal(r, "order_amount")
	if err != nil {
		return reply("CalculateCommission", nil, err)
	}
	commission, err := h.commissionUsecase.Calculate(ctx, commissiondto.CalculateInput{
		OrderID:     mappers.String(r, "order_id"),
		LineItemID:  mappers.String(r, "line_item_id"),
		SellerID:    mappers.String(r, "seller_id"),
		OrderAmount: amount,
	})
	if err != nil {
		return reply("CalculateCommission", nil, err)
	}
	return reply("CalculateCommission", mappers.FromCommission(commission), nil)
}

func (h *SettlementAdminHandler) PayCommission(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	commission, err := h.commissionUsecase.Pay(ctx, mappers.String(r, "commission_id"))
	if err != nil {
		return reply("PayCommission", nil, err)
	}
	return reply("PayCommission", mappers.FromCommission(commission), nil)
}

func (h *SettlementAdminHandler) CancelCommission(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	commission, err := h.commissionUsecase.Cancel(ctx, mappers.String(r, "commission_id"))
	if err != nil {
		return reply("CancelCommission", nil, err)
	}
	return reply("CancelCommission", mappers.FromCommission(commission), nil)
}

func (h *SettlementAdminHandler) SetCommissionRate(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	rate, err := mappers.Decimal(r, "rate")
	if err != nil {
		return reply("SetCommissionRate", nil, err)
	}
	seller, err := h.commissionUsecase.SetCommissionRate(ctx, mappers.String(r, "seller_id"), rate)
	if err != nil {
		return reply("SetCommissionRate", nil, err)
	}
	return reply("SetCommissionRate", mappers.FromSeller(seller), nil)
}

func mutationReply(method string, out *walletdto.MutationOutput, err error) (*structpb.Struct, error) {
	if err != nil {
		return reply(method, nil, err)
	}
	return reply(method, map[string]any{
		"wallet":      mappers.FromWallet(out.Wallet),
		"transaction": mappers.FromTransaction(out.Transaction),
	}, nil)
}

func (h *SettlementAdminHandler) CreditWallet(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	amount, err := mappers.Decimal(r, "amount")
	if err != nil {
		return reply("CreditWallet", nil, err)
	}
	out, err := h.walletUsecase.Credit(ctx, walletdto.CreditInput{
		SellerID:     mappers.String(r, "seller_id"),
		Amount:       amount,
		Source:       domain.CreditSource(mappers.String(r, "source")),
		OrderID:      mappers.String(r, "order_id"),
		CommissionID: mappers.String(r, "commission_id"),
		Description:  mappers.String(r, "description"),
	})
	return mutationReply("CreditWallet", out, err)
}

func (h *SettlementAdminHandler) DebitWallet(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	amount, err := mappers.Decimal(r, "amount")
	if err != nil {
		return reply("DebitWallet", nil, err)
	}
	out, err := h.walletUsecase.Debit(ctx, walletdto.DebitInput{
		SellerID:        mappers.String(r, "seller_id"),
		Amount:          amount,
		Reason:          domain.DebitReason(mappers.String(r, "reason")),
		AdvertisementID: mappers.String(r, "advertisement_id"),
		Description:     mappers.String(r, "description"),
	})
	return mutationReply("DebitWallet", out, err)
}

func (h *SettlementAdminHandler) GetWallet(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	wallet, err := h.walletUsecase.GetWallet(ctx, mappers.String(r, "seller_id"))
	if err != nil {
		return reply("GetWallet", nil, err)
	}
	return reply("GetWallet", mappers.FromWallet(wallet), nil)
}

func (h *SettlementAdminHandler) ApproveWithdrawal(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	request, err := h.withdrawalUsecase.Approve(ctx, mappers.String(r, "withdrawal_id"), mappers.String(r, "note"))
	if err != nil {
		return reply("ApproveWithdrawal", nil, err)
	}
	return reply("ApproveWithdrawal", mappers.FromWithdrawal(request), nil)
}

func (h *SettlementAdminHandler) RejectWithdrawal(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	request, err := h.withdrawalUsecase.Reject(ctx, mappers.String(r, "withdrawal_id"), mappers.String(r, "note"))
	if err != nil {
		return reply("RejectWithdrawal", nil, err)
	}
	return reply("RejectWithdrawal", mappers.FromWithdrawal(request), nil)
}

func (h *SettlementAdminHandler) CompleteWithdrawal(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	request, err := h.withdrawalUsecase.Complete(ctx, withdrawaldto.CompleteInput{
		WithdrawalID:  mappers.String(r, "withdrawal_id"),
		TransactionID: mappers.String(r, "transaction_id"),
		Note:          mappers.String(r, "note"),
	})
	if err != nil {
		return reply("CompleteWithdrawal", nil, err)
	}
	return reply("CompleteWithdrawal", mappers.FromWithdrawal(request), nil)
}

// SettleMatured runs a clearing pass now, or at "now" when the caller sends one.
func (h *SettlementAdminHandler) SettleMatured(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	now, ok, err := mappers.Time(r, "now")
	if err != nil {
		return reply("SettleMatured", nil, err)
	}
	if !ok {
		now = h.nowFn()
	}
	result, err := h.settlementUsecase.SettleMatured(ctx, now)
	if result == nil {
		return reply("SettleMatured", nil, err)
	}
	m := map[string]any{
		"sellers":  result.Sellers,
		"earnings": result.Earnings,
		"amount":   result.Amount.StringFixed(domain.MoneyPlaces),
	}
	if err != nil {
		// partial pass: report what cleared and the failures
		m["error"] = err.Error()
	}
	return reply("SettleMatured", m, nil)
}
