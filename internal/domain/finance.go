package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountType тип счета
type AccountType string

const (
	AccountBank    AccountType = "BANK"
	AccountCash    AccountType = "CASH"
	AccountEWallet AccountType = "E_WALLET"
)

// IsValid returns true for known account types
func (t AccountType) IsValid() bool {
	switch t {
	case AccountBank, AccountCash, AccountEWallet:
		return true
	}
	return false
}

// Account счет студии
// Баланс меняется только проведением платежа, переводом или выплатой, всегда вместе с Transaction
type Account struct {
	ID        uuid.UUID
	Name      string
	Type      AccountType
	Balance   int64
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone возвращает копию счета
func (a *Account) Clone() *Account {
	c := *a
	return &c
}

// TransactionType тип проводки
type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

// TransactionStatus статус проводки
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
)

// Категории проводок
const (
	CategoryBookingPayment = "BOOKING_PAYMENT"
	CategoryRefund         = "REFUND"
	CategoryTransfer       = "TRANSFER"
	CategoryCommission     = "COMMISSION"
)

// Transaction запись в журнале проводок (append-only)
type Transaction struct {
	ID          uuid.UUID
	Type        TransactionType
	Category    string
	Amount      int64 // всегда положительная, направление задает Type
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID // только для TRANSFER
	BookingID   *uuid.UUID
	StaffID     *uuid.UUID // для выплат комиссии
	Description string
	Date        time.Time
	Status      TransactionStatus
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

// TransactionsFilter фильтр для выборки проводок
type TransactionsFilter struct {
	Type      *TransactionType
	AccountID *uuid.UUID // счет-источник или счет-получатель
	BookingID *uuid.UUID
	StaffID   *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// SettlementMode режим проведения
type SettlementMode string

const (
	SettlementPayment SettlementMode = "PAYMENT"
	SettlementRefund  SettlementMode = "REFUND"
)

// IsValid returns true for PAYMENT and REFUND
func (m SettlementMode) IsValid() bool {
	return m == SettlementPayment || m == SettlementRefund
}

// TaxMode режим налоговой отчетности
type TaxMode string

const (
	TaxModeUMKM   TaxMode = "UMKM"   // PPh Final 0.5% с оборота
	TaxModeNormal TaxMode = "NORMAL" // НДС (PPN), цены включают налог
)

// IsValid returns true for UMKM and NORMAL
func (m TaxMode) IsValid() bool {
	return m == TaxModeUMKM || m == TaxModeNormal
}
