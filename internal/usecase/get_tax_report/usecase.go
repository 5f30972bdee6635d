package get_tax_report

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// UseCase use case для налогового отчета за период
type UseCase struct {
	transactionRepo TransactionRepository
	configResolver  ConfigResolver
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(transactionRepo TransactionRepository, configResolver ConfigResolver, logger Logger) *UseCase {
	return &UseCase{
		transactionRepo: transactionRepo,
		configResolver:  configResolver,
		logger:          logger,
	}
}

// Execute выполняет use case налогового отчета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*ledger.TaxReport, error) {
	uc.logger.Info("GetTaxReport: from=%s, to=%s, mode=%v",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Mode)

	// 1. Валидация периода
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	// 2. Режим и ставка: из запроса или из конфигурации студии
	cfg, err := uc.configResolver.GetResolved(ctx, nil)
	if err != nil {
		uc.logger.Error("GetTaxReport: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	mode := cfg.TaxMode
	if req.Mode != nil {
		mode = domain.TaxMode(strings.ToUpper(strings.TrimSpace(*req.Mode)))
	}
	rate := cfg.TaxRate
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}

	// 3. Доходные проводки за период, верхняя граница фильтра исключительная
	from := startOfDay(req.From)
	to := startOfDay(req.To).AddDate(0, 0, 1)
	income := domain.TransactionIncome

	transactions, err := uc.transactionRepo.List(ctx, domain.TransactionsFilter{
		Type: &income,
		From: &from,
		To:   &to,
	})
	if err != nil {
		uc.logger.Error("GetTaxReport: failed to list transactions: %v", err)
		return nil, fmt.Errorf("%w: failed to list transactions: %v", ErrInternal, err)
	}

	// 4. Отчет
	report, err := ledger.BuildTaxReport(transactions, mode, rate)
	if err != nil {
		uc.logger.Warn("GetTaxReport: rejected: %v", err)
		return nil, fmt.Errorf("get_tax_report: %w", err)
	}

	uc.logger.Info("GetTaxReport: mode=%s, %d rows, gross=%d", report.Mode, len(report.Rows), report.TotalGross)
	return report, nil
}
