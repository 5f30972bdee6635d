package transfer_funds

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	accountRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/account"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

// UseCase use case для перевода средств между счетами
type UseCase struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case перевода
// Баланс источника может уйти в минус
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransferFunds: from=%s, to=%s, amount=%d, actor=%s",
		req.FromAccountID, req.ToAccountID, req.Amount, req.Actor)

	// 1. Валидация входных данных
	if req.Actor == uuid.Nil || req.FromAccountID == uuid.Nil || req.ToAccountID == uuid.Nil {
		return nil, fmt.Errorf("%w: actor and both accounts are required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Перевод в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем оба счета (FOR UPDATE) в порядке возрастания ID
		from, to, err := uc.lockAccounts(txCtx, req.FromAccountID, req.ToAccountID)
		if err != nil {
			return err
		}

		// 3.2. Перевод
		result, err := ledger.Transfer(from, to, req.Amount, req.Description, req.Actor, now)
		if err != nil {
			uc.logger.Warn("TransferFunds: rejected: %v", err)
			return fmt.Errorf("transfer_funds: %w", err)
		}

		// 3.3. Записываем оба счета и проводку
		savedFrom, err := uc.accountRepo.UpdateBalance(txCtx, result.From)
		if err != nil {
			return uc.writeError("update source account", err)
		}
		savedTo, err := uc.accountRepo.UpdateBalance(txCtx, result.To)
		if err != nil {
			return uc.writeError("update destination account", err)
		}
		txn, err := uc.transactionRepo.Create(txCtx, result.Transaction)
		if err != nil {
			return uc.writeError("create transaction", err)
		}

		response = &Response{From: savedFrom, To: savedTo, Transaction: txn}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("TransferFunds: aborted by concurrent transfer: %v", err)
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	uc.logger.Info("TransferFunds: moved %d from %s (balance %d) to %s (balance %d)",
		req.Amount, response.From.Name, response.From.Balance, response.To.Name, response.To.Balance)

	return response, nil
}

// lockAccounts блокирует счета в одном порядке для любых направлений перевода
// Встречные переводы A->B и B->A иначе ждут друг друга до deadlock.
func (uc *UseCase) lockAccounts(ctx context.Context, fromID, toID uuid.UUID) (*domain.Account, *domain.Account, error) {
	firstID, secondID := fromID, toID
	if bytes.Compare(firstID[:], secondID[:]) > 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := uc.loadAccount(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := uc.loadAccount(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if firstID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

func (uc *UseCase) loadAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			uc.logger.Warn("TransferFunds: account id=%s not found", id)
			return nil, ErrAccountNotFound
		}
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("TransferFunds: account id=%s: concurrent modification: %v", id, err)
			return nil, ErrVersionConflict
		}
		uc.logger.Error("TransferFunds: failed to get account id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}
	return account, nil
}

func (uc *UseCase) writeError(step string, err error) error {
	if errors.Is(err, accountRepo.ErrVersionConflict) || txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("TransferFunds: %s: concurrent modification", step)
		return ErrVersionConflict
	}
	uc.logger.Error("TransferFunds: failed to %s: %v", step, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
}
