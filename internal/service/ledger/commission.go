package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// CommissionLine вклад одной брони в комиссию
type CommissionLine struct {
	BookingID   uuid.UUID
	Date        time.Time
	ClientName  string
	Price       int64
	Discount    int64
	CostOfGoods int64 // снимок себестоимости + себестоимость позиций
	NetSales    int64
}

// CommissionReport расчет комиссии сотрудника
type CommissionReport struct {
	StaffID         uuid.UUID
	StaffName       string
	Rate            decimal.Decimal
	Lines           []CommissionLine
	TotalNetSales   int64
	TotalCommission int64
}

// Commission считает комиссию сотрудника по завершенным броням
// Учитываются только COMPLETED брони, где сотрудник основной или дополнительный.
// netSales = max(0, price - discount - себестоимость), итог = round(sum * rate / 100).
// Комиссия никогда не бывает отрицательной и равна нулю при ставке <= 0.
func Commission(staff *domain.Staff, bookings []*domain.Booking) CommissionReport {
	report := CommissionReport{
		StaffID:   staff.ID,
		StaffName: staff.Name,
		Rate:      staff.CommissionRate,
		Lines:     make([]CommissionLine, 0),
	}

	for _, b := range bookings {
		if b == nil || !b.IsCompleted() || !b.InvolvesStaff(staff.ID) {
			continue
		}

		line := CommissionLine{
			BookingID:   b.ID,
			Date:        b.Date,
			ClientName:  b.ClientName,
			Price:       b.Price,
			Discount:    DiscountAmount(b.Price, b.Discount),
			CostOfGoods: costOfGoods(b),
		}
		line.NetSales = line.Price - line.Discount - line.CostOfGoods
		if line.NetSales < 0 {
			line.NetSales = 0
		}

		report.Lines = append(report.Lines, line)
		report.TotalNetSales += line.NetSales
	}

	if staff.HasCommission() {
		report.TotalCommission = percentOf(report.TotalNetSales, staff.CommissionRate)
	}
	if report.TotalCommission < 0 {
		report.TotalCommission = 0
	}

	return report
}

// PayoutResult результат выплаты комиссии
type PayoutResult struct {
	Account     *domain.Account
	Transaction *domain.Transaction
}

// Payout оформляет рассчитанную комиссию расходной проводкой со счета
// Уже выплаченные суммы не учитываются: каждый расчет идет по всей истории.
func Payout(report CommissionReport, account *domain.Account, actor uuid.UUID, now time.Time) (*PayoutResult, error) {
	if account == nil {
		return nil, fmt.Errorf("%w: account is required", domain.ErrValidation)
	}
	if report.TotalCommission <= 0 {
		return nil, fmt.Errorf("%w: nothing to pay out for staff %s", domain.ErrValidation, report.StaffID)
	}

	updated := account.Clone()
	updated.Balance -= report.TotalCommission
	updated.UpdatedAt = now

	staffID := report.StaffID
	return &PayoutResult{
		Account: updated,
		Transaction: &domain.Transaction{
			ID:          uuid.New(),
			Type:        domain.TransactionExpense,
			Category:    domain.CategoryCommission,
			Amount:      report.TotalCommission,
			AccountID:   account.ID,
			StaffID:     &staffID,
			Description: fmt.Sprintf("Commission payout for %s (%d bookings)", report.StaffName, len(report.Lines)),
			Date:        now,
			Status:      domain.TransactionCompleted,
			CreatedBy:   actor,
			CreatedAt:   now,
		},
	}, nil
}

func costOfGoods(b *domain.Booking) int64 {
	var total int64
	for _, c := range b.CostSnapshot {
		total += c.Amount
	}
	for _, item := range b.LineItems {
		total += item.Cost
	}
	return total
}
