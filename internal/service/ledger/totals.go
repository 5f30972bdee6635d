package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// TaxRateSource откуда взята ставка налога
type TaxRateSource string

const (
	TaxRateFromSnapshot TaxRateSource = "snapshot"
	TaxRateFromStudio   TaxRateSource = "studio"
)

// Totals итоги счета по бронированию (минорные единицы)
type Totals struct {
	Subtotal       int64
	DiscountAmount int64
	AfterDiscount  int64
	TaxRate        decimal.Decimal
	TaxRateSource  TaxRateSource
	TaxAmount      int64
	GrandTotal     int64
	PaidAmount     int64
	DueAmount      int64
}

// IsSettled бронь считается оплаченной, если остаток не превышает допуск
func (t Totals) IsSettled(tolerance int64) bool {
	return t.DueAmount <= tolerance
}

// ComputeTotals считает итоги счета
// subtotal - сумма позиций, либо базовая цена, если позиций нет.
// Ставка налога берется из снимка брони, а если его нет - текущая ставка студии.
func ComputeTotals(booking *domain.Booking, currentTaxRate decimal.Decimal) Totals {
	subtotal := Subtotal(booking)
	discount := DiscountAmount(subtotal, booking.Discount)
	afterDiscount := subtotal - discount

	rate, source := currentTaxRate, TaxRateFromStudio
	if booking.TaxRateSnapshot != nil {
		rate, source = *booking.TaxRateSnapshot, TaxRateFromSnapshot
	}

	tax := percentOf(afterDiscount, rate)
	grand := afterDiscount + tax

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		AfterDiscount:  afterDiscount,
		TaxRate:        rate,
		TaxRateSource:  source,
		TaxAmount:      tax,
		GrandTotal:     grand,
		PaidAmount:     booking.PaidAmount,
		DueAmount:      grand - booking.PaidAmount,
	}
}

// Subtotal сумма позиций счета или базовая цена
func Subtotal(booking *domain.Booking) int64 {
	if len(booking.LineItems) == 0 {
		return booking.Price
	}

	var sum int64
	for _, item := range booking.LineItems {
		sum += item.Total()
	}
	return sum
}

// DiscountAmount сумма скидки от base, ограниченная диапазоном [0, base]
func DiscountAmount(base int64, discount *domain.Discount) int64 {
	if discount == nil || base <= 0 {
		return 0
	}

	var amount int64
	switch discount.Type {
	case domain.DiscountPercent:
		amount = percentOf(base, discount.Value)
	case domain.DiscountFixed:
		amount = roundMinor(discount.Value)
	}

	if amount < 0 {
		return 0
	}
	if amount > base {
		return base
	}
	return amount
}

// percentOf возвращает round(amount * rate / 100)
func percentOf(amount int64, rate decimal.Decimal) int64 {
	return roundMinor(decimal.NewFromInt(amount).Mul(rate).Div(hundred))
}

// roundMinor округляет до целых минорных единиц, половина - от нуля
func roundMinor(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
