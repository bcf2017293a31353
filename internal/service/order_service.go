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

type SyncOrderItem struct {
	Title        string `json:"title" binding:"required"`
	VariantTitle string `json:"variant_title"`
	Quantity     int    `json:"quantity"`
}

type SyncShippingCharges struct {
	ForwardFreight   string `json:"forward_freight"`
	CODFreight       string `json:"cod_freight"`
	RTOFreight       string `json:"rto_freight"`
	MessagingCharges string `json:"messaging_charges"`
	OtherCharges     string `json:"other_charges"`
}

type SyncOrderRequest struct {
	ID                 string               `json:"id" binding:"required"`
	Name               string               `json:"name"`
	PlacedAt           string               `json:"placed_at" binding:"required"` // RFC3339
	CancelledAt        string               `json:"cancelled_at"`                 // RFC3339, empty = not cancelled
	FulfillmentStatus  *string              `json:"fulfillment_status"`
	DeliveryStatus     *string              `json:"delivery_status"`
	PaymentMethod      string               `json:"payment_method"`
	TotalPrice         string               `json:"total_price"`
	FlatShippingCharge string               `json:"flat_shipping_charge"`
	Items              []SyncOrderItem      `json:"items"`
	ShippingCharges    *SyncShippingCharges `json:"shipping_charges"`
}

type SyncOrdersRequest struct {
	Orders []SyncOrderRequest `json:"orders" binding:"required"`
}

type OrderResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PlacedAt           string    `json:"placed_at"`
	CancelledAt        *string   `json:"cancelled_at"`
	FulfillmentStatus  *string   `json:"fulfillment_status"`
	DeliveryStatus     *string   `json:"delivery_status"`
	PaymentMethod      string    `json:"payment_method"`
	TotalPrice         string    `json:"total_price"`
	FlatShippingCharge string    `json:"flat_shipping_charge"`
	Items              []ItemDTO `json:"items"`
	IsRTO              bool      `json:"is_rto"`
	IsDiscarded        bool      `json:"is_discarded"`
}

type ItemDTO struct {
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	Quantity     int    `json:"quantity"`
}

// --- Interface ---

type OrderService interface {
	SyncOrders(ctx context.Context, userID string, req SyncOrdersRequest) (int, error)
	GetOrders(ctx context.Context, page, limit int) ([]OrderResponse, int64, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	overrideRepo repository.OverrideRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *websocket.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	overrideRepo repository.OverrideRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		overrideRepo: overrideRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

// SyncOrders upserts a batch from the channel feed. The whole batch lands in
// one transaction so a half-synced feed never produces a half-true report.
func (s *orderService) SyncOrders(ctx context.Context, userID string, req SyncOrdersRequest) (int, error) {
	orders := make([]model.Order, 0, len(req.Orders))
	for i, raw := range req.Orders {
		order, err := toOrderModel(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid order at index %d (%s): %w", i, raw.ID, err)
		}
		orders = append(orders, order)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for i := range orders {
			if upsertErr := s.orderRepo.Upsert(txCtx, &orders[i]); upsertErr != nil {
				return fmt.Errorf("failed to upsert order %s: %w", orders[i].ID, upsertErr)
			}
		}

		details, _ := json.Marshal(map[string]interface{}{"order_count": len(orders)})
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionSyncOrders,
			EntityName: "order feed",
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.hub.NotifyReportRefresh("orders_synced")
	return len(orders), nil
}

func (s *orderService) GetOrders(ctx context.Context, page, limit int) ([]OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	overrides, err := s.overrideRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch overrides: %w", err)
	}
	overrideByID := make(map[string]model.OrderOverride, len(overrides))
	for _, o := range overrides {
		overrideByID[o.OrderID] = o
	}

	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o, overrideByID[o.ID]))
	}
	return result, total, nil
}

// --- Helpers ---

func toOrderModel(req SyncOrderRequest) (model.Order, error) {
	placedAt, err := time.Parse(time.RFC3339, req.PlacedAt)
	if err != nil {
		return model.Order{}, fmt.Errorf("invalid placed_at: %w", err)
	}

	order := model.Order{
		ID:                req.ID,
		Name:              req.Name,
		PlacedAt:          placedAt.UTC(),
		FulfillmentStatus: req.FulfillmentStatus,
		DeliveryStatus:    req.DeliveryStatus,
		PaymentMethod:     req.PaymentMethod,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = model.PaymentMethodCOD
	}

	if req.CancelledAt != "" {
		cancelledAt, parseErr := time.Parse(time.RFC3339, req.CancelledAt)
		if parseErr != nil {
			return model.Order{}, fmt.Errorf("invalid cancelled_at: %w", parseErr)
		}
		utc := cancelledAt.UTC()
		order.CancelledAt = &utc
	}

	order.TotalPrice, err = parseAmount(req.TotalPrice)
	if err != nil {
		return model.Order{}, fmt.Errorf("invalid total_price: %w", err)
	}
	order.FlatShippingCharge, err = parseAmount(req.FlatShippingCharge)
	if err != nil {
		return model.Order{}, fmt.Errorf("invalid flat_shipping_charge: %w", err)
	}

	for _, item := range req.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		order.Items = append(order.Items, model.OrderItem{
			OrderID:      order.ID,
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			Quantity:     quantity,
		})
	}

	if req.ShippingCharges != nil {
		charges := model.OrderShippingCharges{OrderID: order.ID}
		fields := []struct {
			raw  string
			dest *decimal.Decimal
			name string
		}{
			{req.ShippingCharges.ForwardFreight, &charges.ForwardFreight, "forward_freight"},
			{req.ShippingCharges.CODFreight, &charges.CODFreight, "cod_freight"},
			{req.ShippingCharges.RTOFreight, &charges.RTOFreight, "rto_freight"},
			{req.ShippingCharges.MessagingCharges, &charges.MessagingCharges, "messaging_charges"},
			{req.ShippingCharges.OtherCharges, &charges.OtherCharges, "other_charges"},
		}
		for _, f := range fields {
			*f.dest, err = parseAmount(f.raw)
			if err != nil {
				return model.Order{}, fmt.Errorf("invalid %s: %w", f.name, err)
			}
		}
		order.ShippingCharges = &charges
	}

	return order, nil
}

// parseAmount reads a decimal string, treating empty as zero.
func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func parseUserID(userID string) *uuid.UUID {
	if userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}

func toOrderResponse(o model.Order, override model.OrderOverride) OrderResponse {
	resp := OrderResponse{
		ID:                 o.ID,
		Name:               o.Name,
		PlacedAt:           o.PlacedAt.Format(time.RFC3339),
		FulfillmentStatus:  o.FulfillmentStatus,
		DeliveryStatus:     o.DeliveryStatus,
		PaymentMethod:      o.PaymentMethod,
		TotalPrice:         o.TotalPrice.StringFixed(2),
		FlatShippingCharge: o.FlatShippingCharge.StringFixed(2),
		IsRTO:              override.IsRTO,
		IsDiscarded:        override.IsDiscarded,
	}
	if o.CancelledAt != nil {
		s := o.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, ItemDTO{
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			Quantity:     item.Quantity,
		})
	}
	return resp
}
