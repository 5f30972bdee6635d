package get_booking_invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// UseCase use case для получения счета по бронированию
type UseCase struct {
	bookingRepo     BookingRepository
	transactionRepo TransactionRepository
	configResolver  ConfigResolver
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	transactionRepo TransactionRepository,
	configResolver ConfigResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		transactionRepo: transactionRepo,
		configResolver:  configResolver,
		logger:          logger,
	}
}

// Execute выполняет use case получения счета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookingInvoice: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	// 2. Загружаем бронь
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("GetBookingInvoice: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("GetBookingInvoice: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Текущая ставка нужна только для броней без снимка
	cfg, err := uc.configResolver.GetResolved(ctx, &booking.RoomID)
	if err != nil {
		uc.logger.Error("GetBookingInvoice: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 4. История проводок по брони
	transactions, err := uc.transactionRepo.List(ctx, domain.TransactionsFilter{BookingID: &booking.ID})
	if err != nil {
		uc.logger.Error("GetBookingInvoice: failed to list transactions: %v", err)
		return nil, fmt.Errorf("%w: failed to list transactions: %v", ErrInternal, err)
	}

	// 5. Итоги
	totals := ledger.ComputeTotals(booking, cfg.TaxRate)

	uc.logger.Info("GetBookingInvoice: booking id=%s grand=%d paid=%d due=%d",
		booking.ID, totals.GrandTotal, totals.PaidAmount, totals.DueAmount)

	return &Response{
		Booking:      booking,
		Totals:       totals,
		Settled:      totals.IsSettled(cfg.SettlementTolerance),
		Tolerance:    cfg.SettlementTolerance,
		Transactions: transactions,
	}, nil
}
