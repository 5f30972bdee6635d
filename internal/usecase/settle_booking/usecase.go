package settle_booking

import (
	"context"
	"errors"
	"fmt"

	accountRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/account"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

// UseCase use case для проведения платежа или возврата по бронированию
type UseCase struct {
	bookingRepo     BookingRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	configResolver  ConfigResolver
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	configResolver ConfigResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		configResolver:  configResolver,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case проведения
// Бронь, счет и проводка записываются вместе: при любой ошибке транзакция откатывается целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SettleBooking: booking=%s, account=%s, amount=%d, mode=%s, actor=%s",
		req.BookingID, req.AccountID, req.Amount, req.Mode, req.Actor)

	// 1. Валидация входных данных
	mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SettleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Проведение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем бронь (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("SettleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("SettleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Загружаем счет (FOR UPDATE)
		account, err := uc.accountRepo.GetByID(txCtx, req.AccountID)
		if err != nil {
			if errors.Is(err, accountRepo.ErrAccountNotFound) {
				uc.logger.Warn("SettleBooking: account id=%s not found", req.AccountID)
				return ErrAccountNotFound
			}
			uc.logger.Error("SettleBooking: failed to get account id=%s: %v", req.AccountID, err)
			return fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
		}

		// 3.3. Конфигурация: текущая ставка налога и допуск
		cfg, err := uc.configResolver.GetResolved(txCtx, &booking.RoomID)
		if err != nil {
			uc.logger.Error("SettleBooking: failed to resolve config: %v", err)
			return fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
		}

		// 3.4. Проведение
		settlement, err := ledger.Settle(booking, account, req.Amount, mode, cfg.TaxRate, req.Actor, now)
		if err != nil {
			uc.logger.Warn("SettleBooking: rejected for booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("settle_booking: %w", err)
		}

		// 3.5. Записываем бронь, счет и проводку
		savedBooking, err := uc.bookingRepo.Update(txCtx, settlement.Booking)
		if err != nil {
			return uc.writeError("update booking", err)
		}

		savedAccount, err := uc.accountRepo.UpdateBalance(txCtx, settlement.Account)
		if err != nil {
			return uc.writeError("update account", err)
		}

		txn, err := uc.transactionRepo.Create(txCtx, settlement.Transaction)
		if err != nil {
			return uc.writeError("create transaction", err)
		}

		response = &Response{
			Booking:     savedBooking,
			Account:     savedAccount,
			Transaction: txn,
			Totals:      settlement.Totals,
			Settled:     settlement.Totals.IsSettled(cfg.SettlementTolerance),
		}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("SettleBooking: aborted by concurrent write: %v", err)
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	uc.metrics.ObserveSettlement(string(mode), req.Amount)
	uc.logger.Info("SettleBooking: %s %d for booking id=%s, due=%d, settled=%t",
		mode, req.Amount, response.Booking.ID, response.Totals.DueAmount, response.Settled)

	return response, nil
}

func (uc *UseCase) writeError(step string, err error) error {
	if errors.Is(err, bookingRepo.ErrVersionConflict) || errors.Is(err, accountRepo.ErrVersionConflict) {
		uc.logger.Warn("SettleBooking: %s: concurrent modification", step)
		return ErrVersionConflict
	}
	uc.logger.Error("SettleBooking: failed to %s: %v", step, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
}
