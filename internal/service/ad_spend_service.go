package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"podboard/internal/engine"
	"podboard/internal/model"
	"podboard/internal/repository"
	"podboard/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type AdSpendRequest struct {
	SpendDate string `json:"spend_date" binding:"required"` // YYYY-MM-DD, store-local
	Amount    string `json:"amount" binding:"required"`
	Note      string `json:"note"`
}

type AdSpendResponse struct {
	ID        string `json:"id"`
	SpendDate string `json:"spend_date"`
	Amount    string `json:"amount"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type AdSpendService interface {
	GetAdSpend(ctx context.Context, page, limit int) ([]AdSpendResponse, int64, error)
	CreateAdSpend(ctx context.Context, userID string, req AdSpendRequest) (AdSpendResponse, error)
	UpdateAdSpend(ctx context.Context, userID, id string, req AdSpendRequest) (AdSpendResponse, error)
	DeleteAdSpend(ctx context.Context, userID, id string) error
}

type adSpendService struct {
	adSpendRepo repository.AdSpendRepository
	auditRepo   repository.AuditRepository
	hub         *websocket.Hub
}

func NewAdSpendService(
	adSpendRepo repository.AdSpendRepository,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) AdSpendService {
	return &adSpendService{
		adSpendRepo: adSpendRepo,
		auditRepo:   auditRepo,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *adSpendService) GetAdSpend(ctx context.Context, page, limit int) ([]AdSpendResponse, int64, error) {
	entries, total, err := s.adSpendRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ad spend: %w", err)
	}

	result := make([]AdSpendResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, toAdSpendResponse(e))
	}
	return result, total, nil
}

func (s *adSpendService) CreateAdSpend(ctx context.Context, userID string, req AdSpendRequest) (AdSpendResponse, error) {
	entry, err := toAdSpendModel(req)
	if err != nil {
		return AdSpendResponse{}, err
	}

	if err := s.adSpendRepo.Create(ctx, &entry); err != nil {
		return AdSpendResponse{}, fmt.Errorf("failed to create ad spend entry: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateAdSpend, entry.ID.String(), entry.SpendDate, req)
	s.hub.NotifyReportRefresh("ad_spend_changed")
	return toAdSpendResponse(entry), nil
}

func (s *adSpendService) UpdateAdSpend(ctx context.Context, userID, id string, req AdSpendRequest) (AdSpendResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return AdSpendResponse{}, fmt.Errorf("invalid ad spend id: %w", err)
	}

	existing, err := s.adSpendRepo.FindByID(ctx, entryID)
	if err != nil {
		return AdSpendResponse{}, fmt.Errorf("ad spend entry not found: %w", err)
	}

	updated, err := toAdSpendModel(req)
	if err != nil {
		return AdSpendResponse{}, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.adSpendRepo.Update(ctx, &updated); err != nil {
		return AdSpendResponse{}, fmt.Errorf("failed to update ad spend entry: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateAdSpend, id, updated.SpendDate, req)
	s.hub.NotifyReportRefresh("ad_spend_changed")
	return toAdSpendResponse(updated), nil
}

func (s *adSpendService) DeleteAdSpend(ctx context.Context, userID, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid ad spend id: %w", err)
	}

	entry, err := s.adSpendRepo.FindByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("ad spend entry not found: %w", err)
	}

	if err := s.adSpendRepo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete ad spend entry: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteAdSpend, id, entry.SpendDate, nil)
	s.hub.NotifyReportRefresh("ad_spend_changed")
	return nil
}

// --- Helpers ---

func toAdSpendModel(req AdSpendRequest) (model.AdSpendEntry, error) {
	// Validate the calendar date without converting it through a timezone.
	if _, err := time.Parse(engine.DateLayout, req.SpendDate); err != nil {
		return model.AdSpendEntry{}, fmt.Errorf("invalid spend_date, expected YYYY-MM-DD: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return model.AdSpendEntry{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsNegative() {
		return model.AdSpendEntry{}, fmt.Errorf("amount must not be negative")
	}

	return model.AdSpendEntry{
		SpendDate: req.SpendDate,
		Amount:    amount,
		Note:      req.Note,
	}, nil
}

func (s *adSpendService) writeAudit(ctx context.Context, userID, action, entityID, entityName string, payload interface{}) {
	details := "{}"
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			details = string(raw)
		}
	}
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     parseUserID(userID),
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	})
}

func toAdSpendResponse(e model.AdSpendEntry) AdSpendResponse {
	return AdSpendResponse{
		ID:        e.ID.String(),
		SpendDate: e.SpendDate,
		Amount:    e.Amount.StringFixed(2),
		Note:      e.Note,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
