package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ActionStatusChanged действие журнала при смене статуса
const ActionStatusChanged = "status_changed"

// automationTargets статусы, при переходе в которые срабатывает автоматизация
var automationTargets = map[domain.BookingStatus]bool{
	domain.StatusShooting:  true,
	domain.StatusCulling:   true,
	domain.StatusEditing:   true,
	domain.StatusReview:    true,
	domain.StatusCompleted: true,
}

// editorAssignmentTargets статусы, в которых правило может назначить редактора
var editorAssignmentTargets = map[domain.BookingStatus]bool{
	domain.StatusCulling: true,
	domain.StatusEditing: true,
}

// Result эффекты автоматизации
type Result struct {
	PreviousStatus  domain.BookingStatus
	AutomationFired bool
	RuleID          *uuid.UUID
	AddedTasks      []domain.Task
	AssignedEditor  *uuid.UUID
}

// ApplyTransition переводит бронь в новый статус и применяет правила автоматизации
// Любой статус может перейти в любой другой по действию пользователя.
// Автоматизация срабатывает только при переходе вперед в SHOOTING..COMPLETED
// и никогда из терминальных статусов. Из подходящих правил выигрывает первое по порядку.
func ApplyTransition(
	booking *domain.Booking,
	newStatus domain.BookingStatus,
	rules []domain.AutomationRule,
	actor uuid.UUID,
	now time.Time,
) (*domain.Booking, Result, error) {
	if !newStatus.IsValid() {
		return nil, Result{}, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, newStatus)
	}

	updated := booking.Clone()
	result := Result{PreviousStatus: booking.Status}

	// 1. Устанавливаем статус
	updated.Status = newStatus
	updated.UpdatedAt = now

	// 2. Ищем правило автоматизации
	if shouldAutomate(booking.Status, newStatus) {
		if rule := firstMatchingRule(rules, newStatus, booking.PackageID); rule != nil {
			result.AutomationFired = true
			ruleID := rule.ID
			result.RuleID = &ruleID

			// 3. Добавляем задачи и назначаем редактора
			for _, title := range rule.TaskTemplates {
				task := domain.Task{
					ID:        uuid.New(),
					Title:     title,
					Completed: false,
					CreatedAt: now,
				}
				updated.Tasks = append(updated.Tasks, task)
				result.AddedTasks = append(result.AddedTasks, task)
			}

			if rule.AssigneeID != nil && editorAssignmentTargets[newStatus] {
				assignee := *rule.AssigneeID
				updated.SecondaryStaffID = &assignee
				result.AssignedEditor = &assignee
			}
		}
	}

	// 4. Журнал
	updated.AppendActivity(actor, ActionStatusChanged, describe(result, newStatus), now)

	return updated, result, nil
}

func shouldAutomate(prev, next domain.BookingStatus) bool {
	if prev.IsTerminal() {
		return false
	}
	if !automationTargets[next] {
		return false
	}
	return next.IsForwardFrom(prev)
}

func firstMatchingRule(rules []domain.AutomationRule, status domain.BookingStatus, packageID *uuid.UUID) *domain.AutomationRule {
	for i := range rules {
		if rules[i].Matches(status, packageID) {
			return &rules[i]
		}
	}
	return nil
}

func describe(result Result, newStatus domain.BookingStatus) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s -> %s", result.PreviousStatus, newStatus)

	if !result.AutomationFired {
		return sb.String()
	}

	fmt.Fprintf(&sb, "; automation added %d task(s)", len(result.AddedTasks))
	if result.AssignedEditor != nil {
		fmt.Fprintf(&sb, ", assigned editor %s", *result.AssignedEditor)
	}
	return sb.String()
}
