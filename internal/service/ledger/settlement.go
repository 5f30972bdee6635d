package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Settlement результат проведения платежа или возврата
// Содержит новые версии брони и счета и созданную проводку
type Settlement struct {
	Mode        domain.SettlementMode
	Booking     *domain.Booking
	Account     *domain.Account
	Transaction *domain.Transaction
	Totals      Totals // итоги после проведения
}

// Settle проводит платеж (PAYMENT) или возврат (REFUND) по бронированию
// Входные бронь и счет не изменяются: при ошибке не меняется ничего,
// при успехе возвращаются согласованные копии и проводка.
func Settle(
	booking *domain.Booking,
	account *domain.Account,
	amount int64,
	mode domain.SettlementMode,
	currentTaxRate decimal.Decimal,
	actor uuid.UUID,
	now time.Time,
) (*Settlement, error) {
	if booking == nil || account == nil {
		return nil, fmt.Errorf("%w: booking and account are required", domain.ErrValidation)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown settlement mode %q", domain.ErrValidation, mode)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	totals := ComputeTotals(booking, currentTaxRate)

	updatedBooking := booking.Clone()
	updatedAccount := account.Clone()
	bookingID := booking.ID
	txn := &domain.Transaction{
		ID:        uuid.New(),
		Amount:    amount,
		AccountID: account.ID,
		BookingID: &bookingID,
		Date:      now,
		Status:    domain.TransactionCompleted,
		CreatedBy: actor,
		CreatedAt: now,
	}

	switch mode {
	case domain.SettlementPayment:
		if amount > totals.DueAmount {
			return nil, fmt.Errorf("%w: payment %d exceeds due amount %d", domain.ErrOverpayment, amount, totals.DueAmount)
		}
		updatedBooking.PaidAmount += amount
		updatedAccount.Balance += amount
		txn.Type = domain.TransactionIncome
		txn.Category = domain.CategoryBookingPayment
		txn.Description = fmt.Sprintf("Payment for booking %s (%s)", booking.ID, booking.ClientName)

	case domain.SettlementRefund:
		if amount > booking.PaidAmount {
			return nil, fmt.Errorf("%w: refund %d exceeds paid amount %d", domain.ErrOverpayment, amount, booking.PaidAmount)
		}
		if account.Balance < amount {
			return nil, fmt.Errorf("%w: account %s balance %d is below refund %d",
				domain.ErrInsufficientFunds, account.Name, account.Balance, amount)
		}
		updatedBooking.PaidAmount -= amount
		updatedAccount.Balance -= amount
		txn.Type = domain.TransactionExpense
		txn.Category = domain.CategoryRefund
		txn.Description = fmt.Sprintf("Refund for booking %s (%s)", booking.ID, booking.ClientName)
	}

	updatedBooking.UpdatedAt = now
	updatedBooking.AppendActivity(actor, "settlement",
		fmt.Sprintf("%s %d via account %s", mode, amount, account.Name), now)
	updatedAccount.UpdatedAt = now

	return &Settlement{
		Mode:        mode,
		Booking:     updatedBooking,
		Account:     updatedAccount,
		Transaction: txn,
		Totals:      ComputeTotals(updatedBooking, currentTaxRate),
	}, nil
}
