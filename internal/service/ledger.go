package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"paylock/internal/model"
	"paylock/internal/repository"
)

var payoutMethods = map[string]bool{
	model.MethodBankTransfer: true,
	model.MethodWallet:       true,
	model.MethodMobileMoney:  true,
	model.MethodCrypto:       true,
}

type WithdrawalParams struct {
	UserID        string
	UserName      string
	Amount        decimal.Decimal
	Currency      string
	Method        string
	AccountNumber string
}

type LedgerService interface {
	// ComputeBalance derives the creator's withdrawable balance from
	// the current ledger contents: sum of net transaction amounts for
	// the creator's content minus pending and completed withdrawals.
	// Never cached; always reflects the latest writes.
	ComputeBalance(ctx context.Context, creatorID string) (decimal.Decimal, error)
	RequestWithdrawal(ctx context.Context, params WithdrawalParams) (*model.Withdrawal, error)
	ResolveWithdrawal(ctx context.Context, id, outcome string) error
	ListTransactions(ctx context.Context) ([]*model.Transaction, error)
	ListTransactionsByCreator(ctx context.Context, creatorID string) ([]*model.Transaction, error)
	ListWithdrawals(ctx context.Context) ([]*model.Withdrawal, error)
	ListWithdrawalsByUser(ctx context.Context, userID string) ([]*model.Withdrawal, error)
}

type ledgerServiceImpl struct {
	transactionRepo repository.TransactionRepository
	withdrawalRepo  repository.WithdrawalRepository
}

func NewLedgerService(
	transactionRepo repository.TransactionRepository,
	withdrawalRepo repository.WithdrawalRepository,
) LedgerService {
	return &ledgerServiceImpl{
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
	}
}

func (s *ledgerServiceImpl) ComputeBalance(ctx context.Context, creatorID string) (decimal.Decimal, error) {
	balance := decimal.Zero

	txs, err := s.transactionRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	for _, tx := range txs {
		balance = balance.Add(tx.NetAmount)
	}

	withdrawals, err := s.withdrawalRepo.ListByUser(ctx, creatorID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list withdrawals: %w", err)
	}
	for _, w := range withdrawals {
		// Rejected withdrawals return the funds.
		if w.Status == model.WithdrawalStatusRejected {
			continue
		}
		balance = balance.Sub(w.Amount)
	}

	return balance, nil
}

func (s *ledgerServiceImpl) RequestWithdrawal(ctx context.Context, params WithdrawalParams) (*model.Withdrawal, error) {
	if params.UserName == "" {
		return nil, validationErr("user_name", "required")
	}
	if params.AccountNumber == "" {
		return nil, validationErr("account_number", "required")
	}
	if !params.Amount.IsPositive() {
		return nil, validationErr("amount", "must be positive")
	}
	if !payoutMethods[params.Method] {
		return nil, validationErr("method", "unknown payout method")
	}

	// No balance check here: requests are accepted as submitted and
	// reviewed by an admin before completion.
	w := &model.Withdrawal{
		ID:            uuid.New().String(),
		UserID:        params.UserID,
		UserName:      params.UserName,
		Amount:        params.Amount,
		Currency:      params.Currency,
		Method:        params.Method,
		AccountNumber: params.AccountNumber,
		Status:        model.WithdrawalStatusPending,
	}

	if err := s.withdrawalRepo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}

	return w, nil
}

func (s *ledgerServiceImpl) ResolveWithdrawal(ctx context.Context, id, outcome string) error {
	if outcome != model.WithdrawalStatusCompleted && outcome != model.WithdrawalStatusRejected {
		return validationErr("status", "must be completed or rejected")
	}

	return s.withdrawalRepo.UpdateStatus(ctx, id, outcome)
}

func (s *ledgerServiceImpl) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	return s.transactionRepo.List(ctx)
}

func (s *ledgerServiceImpl) ListTransactionsByCreator(ctx context.Context, creatorID string) ([]*model.Transaction, error) {
	return s.transactionRepo.ListByCreator(ctx, creatorID)
}

func (s *ledgerServiceImpl) ListWithdrawals(ctx context.Context) ([]*model.Withdrawal, error) {
	return s.withdrawalRepo.List(ctx)
}

func (s *ledgerServiceImpl) ListWithdrawalsByUser(ctx context.Context, userID string) ([]*model.Withdrawal, error) {
	return s.withdrawalRepo.ListByUser(ctx, userID)
}
