package payout_commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	accountRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/account"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/internal/usecase/get_staff_commission"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

// UseCase use case для выплаты комиссии сотруднику
type UseCase struct {
	calculator      CommissionCalculator
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calculator CommissionCalculator,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		calculator:      calculator,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case выплаты
// Комиссия считается заново по периоду, прошлые выплаты не вычитаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PayoutCommission: staff=%s, account=%s, actor=%s", req.StaffID, req.AccountID, req.Actor)

	// 1. Валидация входных данных
	if req.Actor == uuid.Nil || req.StaffID == uuid.Nil || req.AccountID == uuid.Nil {
		return nil, fmt.Errorf("%w: actor, staffID and accountID are required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Расчет и выплата в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Расчет комиссии
		report, err := uc.calculator.Execute(txCtx, &get_staff_commission.Request{
			StaffID:   req.StaffID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
		if err != nil {
			return fmt.Errorf("payout_commission: %w", err)
		}

		// 3.2. Счет (FOR UPDATE)
		account, err := uc.accountRepo.GetByID(txCtx, req.AccountID)
		if err != nil {
			if errors.Is(err, accountRepo.ErrAccountNotFound) {
				uc.logger.Warn("PayoutCommission: account id=%s not found", req.AccountID)
				return ErrAccountNotFound
			}
			uc.logger.Error("PayoutCommission: failed to get account id=%s: %v", req.AccountID, err)
			return fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
		}

		// 3.3. Расходная проводка
		payout, err := ledger.Payout(*report, account, req.Actor, now)
		if err != nil {
			uc.logger.Warn("PayoutCommission: rejected: %v", err)
			return fmt.Errorf("payout_commission: %w", err)
		}

		// 3.4. Записываем счет и проводку
		saved, err := uc.accountRepo.UpdateBalance(txCtx, payout.Account)
		if err != nil {
			if errors.Is(err, accountRepo.ErrVersionConflict) {
				uc.logger.Warn("PayoutCommission: account id=%s was modified concurrently", account.ID)
				return ErrVersionConflict
			}
			uc.logger.Error("PayoutCommission: failed to update account id=%s: %v", account.ID, err)
			return fmt.Errorf("%w: failed to update account: %v", ErrInternal, err)
		}

		txn, err := uc.transactionRepo.Create(txCtx, payout.Transaction)
		if err != nil {
			uc.logger.Error("PayoutCommission: failed to create transaction: %v", err)
			return fmt.Errorf("%w: failed to create transaction: %v", ErrInternal, err)
		}

		response = &Response{Report: report, Account: saved, Transaction: txn}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("PayoutCommission: aborted by concurrent write: %v", err)
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	uc.logger.Info("PayoutCommission: paid %d to staff id=%s from account %s",
		response.Transaction.Amount, req.StaffID, response.Account.Name)

	return response, nil
}
