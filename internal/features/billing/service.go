package billing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"vibedocs/internal/features/accounts"
	"vibedocs/internal/features/audit_logs"

	"github.com/google/uuid"
)

type BillingService struct {
	accountService  *accounts.AccountService
	auditLogService *audit_logs.AuditLogService
	logger          *slog.Logger
}

// ProcessEvent dispatches one webhook event to its handler. Failures
// are logged per handler; unrecognized event types are ignored. The
// webhook endpoint acknowledges the provider either way, so a broken
// handler can never put the provider into a redelivery loop.
func (s *BillingService) ProcessEvent(event *WebhookEvent) {
	var err error

	switch event.Type {
	case "subscription.created", "subscription.updated":
		err = s.handleSubscriptionChange(event)
	case "subscription.deleted":
		err = s.handleSubscriptionDeleted(event)
	case "payment.succeeded":
		err = s.handlePaymentSucceeded(event)
	default:
		s.logger.Info("ignoring unrecognized billing event type",
			slog.String("eventId", event.ID),
			slog.String("eventType", event.Type))
		return
	}

	if err != nil {
		s.logger.Error("failed to process billing event",
			slog.String("eventId", event.ID),
			slog.String("eventType", event.Type),
			slog.String("error", err.Error()))
	}
}

func (s *BillingService) handleSubscriptionChange(event *WebhookEvent) error {
	var data SubscriptionEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to decode subscription event data: %w", err)
	}

	if data.UserID == uuid.Nil {
		return fmt.Errorf("subscription event %s has no user id", event.ID)
	}

	tier := accounts.PlanTier(strings.ToUpper(data.Plan))
	if !accounts.IsValidPlanTier(tier) {
		return fmt.Errorf("subscription event %s has unknown plan %q", event.ID, data.Plan)
	}

	if err := s.accountService.ApplyPlanChange(data.UserID, tier, data.CustomerID); err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Plan changed to %s via billing event %s", tier, event.ID),
		&data.UserID,
	)

	return nil
}

func (s *BillingService) handleSubscriptionDeleted(event *WebhookEvent) error {
	var data SubscriptionEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to decode subscription event data: %w", err)
	}

	if data.UserID == uuid.Nil {
		return fmt.Errorf("subscription event %s has no user id", event.ID)
	}

	if err := s.accountService.ApplyPlanChange(data.UserID, accounts.PlanTierFree, data.CustomerID); err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Subscription cancelled via billing event %s, reverted to free plan", event.ID),
		&data.UserID,
	)

	return nil
}

func (s *BillingService) handlePaymentSucceeded(event *WebhookEvent) error {
	var data PaymentEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to decode payment event data: %w", err)
	}

	if data.UserID == uuid.Nil {
		return fmt.Errorf("payment event %s has no user id", event.ID)
	}

	if data.Credits <= 0 {
		return nil
	}

	return s.accountService.AddCredits(data.UserID, data.Credits)
}
