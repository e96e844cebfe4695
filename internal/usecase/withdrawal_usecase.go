package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	withdrawaldto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/withdrawal"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const referenceAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

type WithdrawalUsecase interface {
	Create(ctx context.Context, input withdrawaldto.CreateInput) (*domain.WithdrawalRequest, error)
	Approve(ctx context.Context, withdrawalID, note string) (*domain.WithdrawalRequest, error)
	Reject(ctx context.Context, withdrawalID, note string) (*domain.WithdrawalRequest, error)
	Complete(ctx context.Context, input withdrawaldto.CompleteInput) (*domain.WithdrawalRequest, error)
	Get(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.WithdrawalRequest, error)
}

type DefaultWithdrawalUsecase struct {
	uow      domain.UnitOfWork
	repos    domain.Repositories
	settings Settings
	effects  sideEffects
	notifier WithdrawalNotifier
	nowFn    func() time.Time
}

func NewDefaultWithdrawalUsecase(
	uow domain.UnitOfWork,
	repos domain.Repositories,
	settings Settings,
	events domain.EventPublisher,
	rejections domain.RejectionLog,
	notifier WithdrawalNotifier,
	m *metrics.SettlementMetrics,
) *DefaultWithdrawalUsecase {
	return &DefaultWithdrawalUsecase{
		uow:      uow,
		repos:    repos,
		settings: settings.withDefaults(),
		effects:  sideEffects{events: events, rejections: rejections, metrics: m},
		notifier: notifier,
		nowFn:    time.Now,
	}
}

// Create validates the request and reserves its amount in the same unit of
// work that stores it. Validation order: amount, minimum, bank account, balance.
func (uc *DefaultWithdrawalUsecase) Create(ctx context.Context, input withdrawaldto.CreateInput) (*domain.WithdrawalRequest, error) {
	now := uc.nowFn()
	request, err := uc.create(ctx, input, now)
	if err != nil {
		uc.effects.rejected(ctx, "withdrawal_create", input.SellerID, "", input.Amount, err, now)
		return nil, err
	}

	uc.effects.metrics.RecordDebit(string(domain.DebitReasonWithdrawal), request.Amount)
	uc.effects.metrics.RecordWithdrawal(string(request.Status), request.Amount)
	uc.effects.publish(ctx,
		domain.SettlementEvent{
			Type:        domain.EventWalletDebited,
			SellerID:    request.SellerID,
			Amount:      request.Amount,
			ReferenceID: request.ID,
			Status:      string(domain.DebitReasonWithdrawal),
			OccurredAt:  now,
		},
		withdrawalEvent(domain.EventWithdrawalRequested, request, now),
	)
	uc.notify(request)
	return request, nil
}

func (uc *DefaultWithdrawalUsecase) create(ctx context.Context, input withdrawaldto.CreateInput, now time.Time) (*domain.WithdrawalRequest, error) {
	if input.SellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateWithdrawalAmount(input.Amount, uc.settings.MinimumWithdrawal); err != nil {
		return nil, err
	}
	var given domain.BankAccount
	if input.BankAccount != nil && !input.BankAccount.IsZero() {
		account, err := input.BankAccount.Validate(uc.settings.IBANRule)
		if err != nil {
			return nil, err
		}
		given = account
	}

	reference, err := newReference()
	if err != nil {
		return nil, err
	}

	var request *domain.WithdrawalRequest
	err = uc.uow.Do(ctx, input.SellerID, func(repos domain.Repositories) error {
		account := given
		if account.IsZero() {
			saved, err := savedBankAccount(ctx, repos, input.SellerID)
			if err != nil {
				return err
			}
			if account, err = saved.Validate(uc.settings.IBANRule); err != nil {
				return err
			}
		}

		request = &domain.WithdrawalRequest{
			ID:          uuid.NewString(),
			Reference:   reference,
			SellerID:    input.SellerID,
			Amount:      input.Amount,
			BankAccount: account,
			Status:      domain.WithdrawalPending,
			RequestedAt: now,
			UpdatedAt:   now,
		}
		if _, _, err := debitAvailable(ctx, repos, input.SellerID, domain.DebitReasonWithdrawal, ledgerEntry{
			Type:         domain.TxWithdrawalReserve,
			Amount:       input.Amount,
			WithdrawalID: request.ID,
			Description:  "withdrawal " + reference + " reserved",
		}, now); err != nil {
			return err
		}
		return repos.Withdrawals.CreateWithdrawal(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func savedBankAccount(ctx context.Context, repos domain.Repositories, sellerID string) (domain.BankAccount, error) {
	seller, err := repos.Sellers.GetSellerByID(ctx, sellerID)
	if err != nil && !isNotFound(err) {
		return domain.BankAccount{}, err
	}
	if seller == nil || seller.BankAccount == nil {
		return domain.BankAccount{}, fmt.Errorf("%w: no bank account given and none saved", domain.ErrInvalidBankAccount)
	}
	return *seller.BankAccount, nil
}

func (uc *DefaultWithdrawalUsecase) Approve(ctx context.Context, withdrawalID, note string) (*domain.WithdrawalRequest, error) {
	return uc.transition(ctx, "withdrawal_approve", withdrawalID, domain.WithdrawalApproved, note, "", nil)
}

// Reject returns the reserved amount to the available balance.
func (uc *DefaultWithdrawalUsecase) Reject(ctx context.Context, withdrawalID, note string) (*domain.WithdrawalRequest, error) {
	return uc.transition(ctx, "withdrawal_reject", withdrawalID, domain.WithdrawalRejected, note, "",
		func(wallet *domain.SellerWallet, request *domain.WithdrawalRequest, now time.Time) (ledgerEntry, error) {
			entry := ledgerEntry{
				Type:         domain.TxWithdrawalRelease,
				Amount:       request.Amount,
				WithdrawalID: request.ID,
				Description:  "withdrawal " + request.Reference + " rejected",
			}
			return entry, wallet.ReleaseReservation(request.Amount, now)
		})
}

// Complete books the bank transfer: the reservation becomes withdrawn money,
// the available balance does not change.
func (uc *DefaultWithdrawalUsecase) Complete(ctx context.Context, input withdrawaldto.CompleteInput) (*domain.WithdrawalRequest, error) {
	return uc.transition(ctx, "withdrawal_complete", input.WithdrawalID, domain.WithdrawalCompleted, input.Note, input.TransactionID,
		func(wallet *domain.SellerWallet, request *domain.WithdrawalRequest, now time.Time) (ledgerEntry, error) {
			entry := ledgerEntry{
				Type:         domain.TxWithdrawalPayout,
				Amount:       request.Amount,
				WithdrawalID: request.ID,
				Description:  "withdrawal " + request.Reference + " paid out",
			}
			return entry, wallet.CompletePayout(request.Amount, now)
		})
}

type walletStep func(wallet *domain.SellerWallet, request *domain.WithdrawalRequest, now time.Time) (ledgerEntry, error)

func (uc *DefaultWithdrawalUsecase) transition(
	ctx context.Context,
	operation, withdrawalID string,
	next domain.WithdrawalStatus,
	note, transferTxID string,
	step walletStep,
) (*domain.WithdrawalRequest, error) {
	current, err := uc.repos.Withdrawals.GetWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	var request *domain.WithdrawalRequest
	err = uc.uow.Do(ctx, current.SellerID, func(repos domain.Repositories) error {
		var err error
		request, err = repos.Withdrawals.GetWithdrawalByID(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if err := request.TransitionTo(next, note, now); err != nil {
			return err
		}
		if transferTxID != "" {
			request.TransactionID = transferTxID
		}
		if step != nil {
			wallet, err := loadWallet(ctx, repos, request.SellerID, now)
			if err != nil {
				return err
			}
			entry, err := step(wallet, request, now)
			if err != nil {
				return err
			}
			if _, err := commitWallet(ctx, repos, wallet, entry, now); err != nil {
				return err
			}
		}
		return repos.Withdrawals.UpdateWithdrawal(ctx, request)
	})
	if err != nil {
		uc.effects.rejected(ctx, operation, current.SellerID, withdrawalID, current.Amount, err, now)
		return nil, err
	}

	uc.effects.metrics.RecordWithdrawal(string(request.Status), request.Amount)
	uc.effects.publish(ctx, withdrawalEvent(statusEvent(next), request, now))
	uc.notify(request)
	return request, nil
}

func (uc *DefaultWithdrawalUsecase) Get(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	return uc.repos.Withdrawals.GetWithdrawalByID(ctx, withdrawalID)
}

func (uc *DefaultWithdrawalUsecase) ListBySeller(ctx context.Context, sellerID string) ([]*domain.WithdrawalRequest, error) {
	return uc.repos.Withdrawals.ListWithdrawalsBySellerID(ctx, sellerID)
}

func (uc *DefaultWithdrawalUsecase) notify(request *domain.WithdrawalRequest) {
	if uc.notifier != nil {
		uc.notifier.NotifyWithdrawal(request)
	}
}

func statusEvent(status domain.WithdrawalStatus) string {
	switch status {
	case domain.WithdrawalApproved:
		return domain.EventWithdrawalApproved
	case domain.WithdrawalRejected:
		return domain.EventWithdrawalRejected
	case domain.WithdrawalCompleted:
		return domain.EventWithdrawalCompleted
	}
	return domain.EventWithdrawalRequested
}

func withdrawalEvent(eventType string, request *domain.WithdrawalRequest, now time.Time) domain.SettlementEvent {
	return domain.SettlementEvent{
		Type:        eventType,
		SellerID:    request.SellerID,
		Amount:      request.Amount,
		ReferenceID: request.ID,
		Status:      string(request.Status),
		OccurredAt:  now,
	}
}

func newReference() (string, error) {
	gen, err := nanoid.CustomASCII(referenceAlphabet, 10)
	if err != nil {
		return "", err
	}
	return "WD-" + gen(), nil
}
