package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"podboard/internal/model"
	"podboard/internal/repository"
	"podboard/internal/websocket"

	"gorm.io/gorm"
)

// --- DTOs ---

type OverrideResponse struct {
	OrderID     string `json:"order_id"`
	IsRTO       bool   `json:"is_rto"`
	IsDiscarded bool   `json:"is_discarded"`
}

// --- Interface ---

// OverrideService flips the operator's manual flags on an order. Marking RTO
// forces the classifier to FAILED no matter what the courier reports;
// discarding hides the order from sales-facing aggregates.
type OverrideService interface {
	SetRTO(ctx context.Context, userID, orderID string, rto bool) (OverrideResponse, error)
	SetDiscarded(ctx context.Context, userID, orderID string, discarded bool) (OverrideResponse, error)
}

type overrideService struct {
	orderRepo    repository.OrderRepository
	overrideRepo repository.OverrideRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *websocket.Hub
}

func NewOverrideService(
	orderRepo repository.OrderRepository,
	overrideRepo repository.OverrideRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) OverrideService {
	return &overrideService{
		orderRepo:    orderRepo,
		overrideRepo: overrideRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

func (s *overrideService) SetRTO(ctx context.Context, userID, orderID string, rto bool) (OverrideResponse, error) {
	action := model.ActionMarkRTO
	if !rto {
		action = model.ActionUnmarkRTO
	}
	return s.apply(ctx, userID, orderID, action, func(o *model.OrderOverride) {
		o.IsRTO = rto
	})
}

func (s *overrideService) SetDiscarded(ctx context.Context, userID, orderID string, discarded bool) (OverrideResponse, error) {
	action := model.ActionDiscardOrder
	if !discarded {
		action = model.ActionRestoreOrder
	}
	return s.apply(ctx, userID, orderID, action, func(o *model.OrderOverride) {
		o.IsDiscarded = discarded
	})
}

func (s *overrideService) apply(ctx context.Context, userID, orderID, action string, mutate func(*model.OrderOverride)) (OverrideResponse, error) {
	// The order must exist; overrides on unknown ids would silently do nothing
	// in every report.
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return OverrideResponse{}, fmt.Errorf("order %s not found: %w", orderID, err)
	}

	override := &model.OrderOverride{OrderID: orderID}
	existing, err := s.overrideRepo.FindByOrderID(ctx, orderID)
	if err == nil {
		override = existing
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return OverrideResponse{}, fmt.Errorf("failed to load override: %w", err)
	}

	mutate(override)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if upsertErr := s.overrideRepo.Upsert(txCtx, override); upsertErr != nil {
			return fmt.Errorf("failed to save override: %w", upsertErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"is_rto":       override.IsRTO,
			"is_discarded": override.IsDiscarded,
		})
		audit := &model.AuditLog{
			UserID:    parseUserID(userID),
			Action:    action,
			EntityID:  orderID,
			Details:   string(details),
			CreatedAt: time.Now().UTC(),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return OverrideResponse{}, err
	}

	s.hub.NotifyReportRefresh("override_changed")
	return OverrideResponse{
		OrderID:     override.OrderID,
		IsRTO:       override.IsRTO,
		IsDiscarded: override.IsDiscarded,
	}, nil
}
