package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"podboard/internal/model"
	"podboard/internal/repository"
	"podboard/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CostFieldRequest struct {
	Name            string `json:"name" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=COGS NDR BOTH"`
	CalculationType string `json:"calculation_type" binding:"required,oneof=FIXED PERCENTAGE"`
	PercentageType  string `json:"percentage_type" binding:"omitempty,oneof=EXCLUDED INCLUDED"`
	SmallPrepaid    string `json:"small_prepaid" binding:"required"`
	SmallCOD        string `json:"small_cod" binding:"required"`
	LargePrepaid    string `json:"large_prepaid" binding:"required"`
	LargeCOD        string `json:"large_cod" binding:"required"`
}

type CostFieldResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	CalculationType string `json:"calculation_type"`
	PercentageType  string `json:"percentage_type"`
	SmallPrepaid    string `json:"small_prepaid"`
	SmallCOD        string `json:"small_cod"`
	LargePrepaid    string `json:"large_prepaid"`
	LargeCOD        string `json:"large_cod"`
	CreatedAt       string `json:"created_at"`
}

// --- Interface ---

type CostFieldService interface {
	GetCostFields(ctx context.Context) ([]CostFieldResponse, error)
	CreateCostField(ctx context.Context, userID string, req CostFieldRequest) (CostFieldResponse, error)
	UpdateCostField(ctx context.Context, userID, id string, req CostFieldRequest) (CostFieldResponse, error)
	DeleteCostField(ctx context.Context, userID, id string) error
}

type costFieldService struct {
	costFieldRepo repository.CostFieldRepository
	auditRepo     repository.AuditRepository
	hub           *websocket.Hub
}

func NewCostFieldService(
	costFieldRepo repository.CostFieldRepository,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) CostFieldService {
	return &costFieldService{
		costFieldRepo: costFieldRepo,
		auditRepo:     auditRepo,
		hub:           hub,
	}
}

// --- Implementation ---

func (s *costFieldService) GetCostFields(ctx context.Context) ([]CostFieldResponse, error) {
	fields, err := s.costFieldRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cost fields: %w", err)
	}

	result := make([]CostFieldResponse, 0, len(fields))
	for _, f := range fields {
		result = append(result, toCostFieldResponse(f))
	}
	return result, nil
}

func (s *costFieldService) CreateCostField(ctx context.Context, userID string, req CostFieldRequest) (CostFieldResponse, error) {
	field, err := toCostFieldModel(req)
	if err != nil {
		return CostFieldResponse{}, err
	}

	if err := s.costFieldRepo.Create(ctx, &field); err != nil {
		return CostFieldResponse{}, fmt.Errorf("failed to create cost field: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateCostField, field.ID.String(), field.Name, req)
	s.hub.NotifyReportRefresh("cost_model_changed")
	return toCostFieldResponse(field), nil
}

func (s *costFieldService) UpdateCostField(ctx context.Context, userID, id string, req CostFieldRequest) (CostFieldResponse, error) {
	fieldID, err := uuid.Parse(id)
	if err != nil {
		return CostFieldResponse{}, fmt.Errorf("invalid cost field id: %w", err)
	}

	existing, err := s.costFieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		return CostFieldResponse{}, fmt.Errorf("cost field not found: %w", err)
	}

	updated, err := toCostFieldModel(req)
	if err != nil {
		return CostFieldResponse{}, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.costFieldRepo.Update(ctx, &updated); err != nil {
		return CostFieldResponse{}, fmt.Errorf("failed to update cost field: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateCostField, updated.ID.String(), updated.Name, req)
	s.hub.NotifyReportRefresh("cost_model_changed")
	return toCostFieldResponse(updated), nil
}

func (s *costFieldService) DeleteCostField(ctx context.Context, userID, id string) error {
	fieldID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid cost field id: %w", err)
	}

	field, err := s.costFieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		return fmt.Errorf("cost field not found: %w", err)
	}

	if err := s.costFieldRepo.Delete(ctx, fieldID); err != nil {
		return fmt.Errorf("failed to delete cost field: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteCostField, id, field.Name, nil)
	s.hub.NotifyReportRefresh("cost_model_changed")
	return nil
}

// --- Helpers ---

func toCostFieldModel(req CostFieldRequest) (model.CostField, error) {
	field := model.CostField{
		Name:            req.Name,
		Type:            req.Type,
		CalculationType: req.CalculationType,
		PercentageType:  req.PercentageType,
	}
	if field.PercentageType == "" {
		field.PercentageType = model.PercentageTypeExcluded
	}

	values := []struct {
		raw  string
		dest *decimal.Decimal
		name string
	}{
		{req.SmallPrepaid, &field.SmallPrepaid, "small_prepaid"},
		{req.SmallCOD, &field.SmallCOD, "small_cod"},
		{req.LargePrepaid, &field.LargePrepaid, "large_prepaid"},
		{req.LargeCOD, &field.LargeCOD, "large_cod"},
	}
	for _, v := range values {
		parsed, err := decimal.NewFromString(v.raw)
		if err != nil {
			return model.CostField{}, fmt.Errorf("invalid %s: %w", v.name, err)
		}
		if parsed.IsNegative() {
			return model.CostField{}, fmt.Errorf("%s must not be negative", v.name)
		}
		*v.dest = parsed
	}

	return field, nil
}

func (s *costFieldService) writeAudit(ctx context.Context, userID, action, entityID, entityName string, payload interface{}) {
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

func toCostFieldResponse(f model.CostField) CostFieldResponse {
	return CostFieldResponse{
		ID:              f.ID.String(),
		Name:            f.Name,
		Type:            f.Type,
		CalculationType: f.CalculationType,
		PercentageType:  f.PercentageType,
		SmallPrepaid:    f.SmallPrepaid.StringFixed(2),
		SmallCOD:        f.SmallCOD.StringFixed(2),
		LargePrepaid:    f.LargePrepaid.StringFixed(2),
		LargeCOD:        f.LargeCOD.StringFixed(2),
		CreatedAt:       f.CreatedAt.Format(time.RFC3339),
	}
}
