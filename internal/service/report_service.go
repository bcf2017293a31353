package service

import (
	"context"
	"fmt"
	"time"

	"podboard/internal/engine"
	"podboard/internal/model"
	"podboard/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CostItemDTO struct {
	FieldID   string `json:"field_id"`
	FieldName string `json:"field_name"`
	Amount    string `json:"amount"`
}

type OrderPnLDTO struct {
	OrderID       string        `json:"order_id"`
	Date          string        `json:"date"`
	Status        string        `json:"status"`
	Variant       string        `json:"variant"`
	PaymentMethod string        `json:"payment_method"`
	Revenue       string        `json:"revenue"`
	AllocatedCost string        `json:"allocated_cost"`
	AdCost        string        `json:"ad_cost"`
	ShippingCost  string        `json:"shipping_cost"`
	Profit        string        `json:"profit"`
	CostItems     []CostItemDTO `json:"cost_items"`
	Counted       bool          `json:"counted"`
	Discarded     bool          `json:"discarded"`
}

type DayAggregateDTO struct {
	Date            string `json:"date"`
	Revenue         string `json:"revenue"`
	AdSpend         string `json:"ad_spend"`
	Profit          string `json:"profit"`
	CountedOrders   int    `json:"counted_orders"`
	PendingOrders   int    `json:"pending_orders"`
	ExpectedNDR     int    `json:"expected_ndr"`
	EstimatedProfit string `json:"estimated_profit"`
}

type MonthAggregateDTO struct {
	Month           string `json:"month"`
	Revenue         string `json:"revenue"`
	AdSpend         string `json:"ad_spend"`
	Profit          string `json:"profit"`
	CountedOrders   int    `json:"counted_orders"`
	PendingOrders   int    `json:"pending_orders"`
	ExpectedNDR     int    `json:"expected_ndr"`
	EstimatedProfit string `json:"estimated_profit"`
}

// GlobalStatsDTO reports undefined ratios as null, never as a fake zero.
type GlobalStatsDTO struct {
	DeliveredCount     int     `json:"delivered_count"`
	FailedCount        int     `json:"failed_count"`
	PendingCount       int     `json:"pending_count"`
	NDRRate            *string `json:"ndr_rate"`
	AvgProfitPerOrder  *string `json:"avg_profit_per_order"`
	AvgRevenuePerOrder *string `json:"avg_revenue_per_order"`
	TotalRevenue       string  `json:"total_revenue"`
	TotalAdSpend       string  `json:"total_ad_spend"`
	ROAS               *string `json:"roas"`
}

type PnLReportResponse struct {
	Orders        []OrderPnLDTO       `json:"orders"`
	Days          []DayAggregateDTO   `json:"days"`
	Months        []MonthAggregateDTO `json:"months"`
	Stats         GlobalStatsDTO      `json:"stats"`
	NoCostModel   bool                `json:"no_cost_model"`
	NoAdSpendData bool                `json:"no_ad_spend_data"`
	ClampedInputs int                 `json:"clamped_inputs"`
}

type ProjectionResponse struct {
	Feasible       bool    `json:"feasible"`
	WorkingDays    int     `json:"working_days"`
	MonthlyOrders  *string `json:"monthly_orders_required"`
	MonthlyRevenue *string `json:"monthly_revenue_required"`
	MonthlyAdSpend *string `json:"monthly_ad_spend_required"`
	DailyOrders    *string `json:"daily_orders_required"`
	DailyRevenue   *string `json:"daily_revenue_required"`
	DailyAdSpend   *string `json:"daily_ad_spend_required"`
	DailyProfit    *string `json:"daily_profit_required"`
	// Basis echoes the window averages the projection was derived from.
	Basis GlobalStatsDTO `json:"basis"`
}

// --- Interface ---

type ReportService interface {
	GetPnLReport(ctx context.Context, from, to *time.Time) (PnLReportResponse, error)
	GetProjection(ctx context.Context, target decimal.Decimal, workingDays int, from, to *time.Time) (ProjectionResponse, error)
}

type reportService struct {
	orderRepo     repository.OrderRepository
	costFieldRepo repository.CostFieldRepository
	adSpendRepo   repository.AdSpendRepository
	overrideRepo  repository.OverrideRepository
}

func NewReportService(
	orderRepo repository.OrderRepository,
	costFieldRepo repository.CostFieldRepository,
	adSpendRepo repository.AdSpendRepository,
	overrideRepo repository.OverrideRepository,
) ReportService {
	return &reportService{
		orderRepo:     orderRepo,
		costFieldRepo: costFieldRepo,
		adSpendRepo:   adSpendRepo,
		overrideRepo:  overrideRepo,
	}
}

// projectionWindowDays is the default trailing window for projection averages.
const projectionWindowDays = 30

// --- Implementation ---

func (s *reportService) GetPnLReport(ctx context.Context, from, to *time.Time) (PnLReportResponse, error) {
	input, err := s.buildInput(ctx, from, to)
	if err != nil {
		return PnLReportResponse{}, err
	}

	report := engine.Compute(input)
	return toPnLReportResponse(report), nil
}

func (s *reportService) GetProjection(ctx context.Context, target decimal.Decimal, workingDays int, from, to *time.Time) (ProjectionResponse, error) {
	// Default window: trailing 30 days. The engine itself never picks a
	// window; it is always a caller decision.
	if from == nil && to == nil {
		now := time.Now().UTC()
		start := now.AddDate(0, 0, -projectionWindowDays)
		from, to = &start, &now
	}

	input, err := s.buildInput(ctx, from, to)
	if err != nil {
		return ProjectionResponse{}, err
	}

	report := engine.Compute(input)
	stats := report.Stats

	resp := ProjectionResponse{Basis: toGlobalStatsDTO(stats)}
	if !stats.AveragesDefined {
		// No final-status orders in the window: nothing to invert.
		resp.WorkingDays = workingDays
		if resp.WorkingDays <= 0 {
			resp.WorkingDays = engine.DefaultWorkingDays
		}
		return resp, nil
	}

	projection := engine.Project(engine.ProjectionParams{
		TargetMonthlyProfit: target,
		AvgProfitPerOrder:   stats.AvgProfitPerOrder,
		AvgRevenuePerOrder:  stats.AvgRevenuePerOrder,
		ROAS:                stats.ROAS,
		WorkingDays:         workingDays,
	})

	resp.Feasible = projection.Feasible
	resp.WorkingDays = projection.WorkingDays
	if projection.Feasible {
		resp.MonthlyOrders = fixed(projection.MonthlyOrders)
		resp.MonthlyRevenue = fixed(projection.MonthlyRevenue)
		resp.MonthlyAdSpend = fixed(projection.MonthlyAdSpend)
		resp.DailyOrders = fixed(projection.DailyOrders)
		resp.DailyRevenue = fixed(projection.DailyRevenue)
		resp.DailyAdSpend = fixed(projection.DailyAdSpend)
		resp.DailyProfit = fixed(projection.DailyProfit)
	}
	return resp, nil
}

// buildInput loads every collection one engine run needs and maps the gorm
// models onto the engine's plain structs.
func (s *reportService) buildInput(ctx context.Context, from, to *time.Time) (engine.Input, error) {
	orders, err := s.orderRepo.ListForReport(ctx, from, to)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load orders: %w", err)
	}

	fields, err := s.costFieldRepo.ListAll(ctx)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load cost fields: %w", err)
	}

	fromKey, toKey := "", ""
	if from != nil {
		fromKey = engine.StoreDate(*from)
	}
	if to != nil {
		toKey = engine.StoreDate(*to)
	}
	adSpend, err := s.adSpendRepo.ListBetween(ctx, fromKey, toKey)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load ad spend: %w", err)
	}

	overrides, err := s.overrideRepo.ListAll(ctx)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load overrides: %w", err)
	}

	input := engine.Input{
		RTOSet:     make(map[string]bool),
		DiscardSet: make(map[string]bool),
	}
	for _, o := range overrides {
		if o.IsRTO {
			input.RTOSet[o.OrderID] = true
		}
		if o.IsDiscarded {
			input.DiscardSet[o.OrderID] = true
		}
	}

	input.Orders = make([]engine.Order, 0, len(orders))
	for _, o := range orders {
		input.Orders = append(input.Orders, toEngineOrder(o))
	}

	input.CostFields = make([]engine.CostField, 0, len(fields))
	for _, f := range fields {
		input.CostFields = append(input.CostFields, engine.CostField{
			ID:             f.ID.String(),
			Name:           f.Name,
			Type:           f.Type,
			Calculation:    f.CalculationType,
			PercentageType: f.PercentageType,
			Values: engine.CostValues{
				SmallPrepaid: f.SmallPrepaid,
				SmallCOD:     f.SmallCOD,
				LargePrepaid: f.LargePrepaid,
				LargeCOD:     f.LargeCOD,
			},
		})
	}

	input.AdSpend = make([]engine.AdSpendEntry, 0, len(adSpend))
	for _, e := range adSpend {
		input.AdSpend = append(input.AdSpend, engine.AdSpendEntry{
			Date:   e.SpendDate,
			Amount: e.Amount,
		})
	}

	return input, nil
}

// --- Helpers ---

func toEngineOrder(o model.Order) engine.Order {
	eo := engine.Order{
		ID:                 o.ID,
		PlacedAt:           o.PlacedAt,
		Cancelled:          o.CancelledAt != nil,
		PaymentMethod:      o.PaymentMethod,
		TotalPrice:         o.TotalPrice,
		FlatShippingCharge: o.FlatShippingCharge,
	}
	if o.FulfillmentStatus != nil {
		eo.FulfillmentStatus = *o.FulfillmentStatus
	}
	if o.DeliveryStatus != nil {
		eo.DeliveryStatus = *o.DeliveryStatus
	}
	for _, item := range o.Items {
		eo.Items = append(eo.Items, engine.LineItem{
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			Quantity:     item.Quantity,
		})
	}
	if o.ShippingCharges != nil {
		eo.Shipping = &engine.ShippingBreakdown{
			ForwardFreight:   o.ShippingCharges.ForwardFreight,
			CODFreight:       o.ShippingCharges.CODFreight,
			RTOFreight:       o.ShippingCharges.RTOFreight,
			MessagingCharges: o.ShippingCharges.MessagingCharges,
			OtherCharges:     o.ShippingCharges.OtherCharges,
		}
	}
	return eo
}

func toPnLReportResponse(r engine.Report) PnLReportResponse {
	resp := PnLReportResponse{
		Orders:        make([]OrderPnLDTO, 0, len(r.Orders)),
		Days:          make([]DayAggregateDTO, 0, len(r.Days)),
		Months:        make([]MonthAggregateDTO, 0, len(r.Months)),
		Stats:         toGlobalStatsDTO(r.Stats),
		NoCostModel:   r.NoCostModel,
		NoAdSpendData: r.NoAdSpendData,
		ClampedInputs: r.ClampedInputs,
	}

	for _, row := range r.Orders {
		dto := OrderPnLDTO{
			OrderID:       row.OrderID,
			Date:          row.Date,
			Status:        row.Status,
			Variant:       row.Variant,
			PaymentMethod: row.PaymentMethod,
			Revenue:       row.Revenue.StringFixed(2),
			AllocatedCost: row.AllocatedCost.StringFixed(2),
			AdCost:        row.AdCost.StringFixed(2),
			ShippingCost:  row.ShippingCost.StringFixed(2),
			Profit:        row.Profit.StringFixed(2),
			CostItems:     make([]CostItemDTO, 0, len(row.CostItems)),
			Counted:       row.Counted,
			Discarded:     row.Discarded,
		}
		for _, item := range row.CostItems {
			dto.CostItems = append(dto.CostItems, CostItemDTO{
				FieldID:   item.FieldID,
				FieldName: item.FieldName,
				Amount:    item.Amount.StringFixed(2),
			})
		}
		resp.Orders = append(resp.Orders, dto)
	}

	for _, day := range r.Days {
		resp.Days = append(resp.Days, DayAggregateDTO{
			Date:            day.Date,
			Revenue:         day.Revenue.StringFixed(2),
			AdSpend:         day.AdSpend.StringFixed(2),
			Profit:          day.Profit.StringFixed(2),
			CountedOrders:   day.CountedOrders,
			PendingOrders:   day.PendingOrders,
			ExpectedNDR:     day.ExpectedNDR,
			EstimatedProfit: day.EstimatedProfit.StringFixed(2),
		})
	}

	for _, m := range r.Months {
		resp.Months = append(resp.Months, MonthAggregateDTO{
			Month:           m.Month,
			Revenue:         m.Revenue.StringFixed(2),
			AdSpend:         m.AdSpend.StringFixed(2),
			Profit:          m.Profit.StringFixed(2),
			CountedOrders:   m.CountedOrders,
			PendingOrders:   m.PendingOrders,
			ExpectedNDR:     m.ExpectedNDR,
			EstimatedProfit: m.EstimatedProfit.StringFixed(2),
		})
	}

	return resp
}

func toGlobalStatsDTO(s engine.GlobalStats) GlobalStatsDTO {
	dto := GlobalStatsDTO{
		DeliveredCount: s.DeliveredCount,
		FailedCount:    s.FailedCount,
		PendingCount:   s.PendingCount,
		TotalRevenue:   s.TotalRevenue.StringFixed(2),
		TotalAdSpend:   s.TotalAdSpend.StringFixed(2),
	}
	if s.NDRRateDefined {
		dto.NDRRate = fixed(s.NDRRate)
	}
	if s.AveragesDefined {
		dto.AvgProfitPerOrder = fixed(s.AvgProfitPerOrder)
		dto.AvgRevenuePerOrder = fixed(s.AvgRevenuePerOrder)
	}
	if s.ROASDefined {
		dto.ROAS = fixed(s.ROAS)
	}
	return dto
}

func fixed(d decimal.Decimal) *string {
	s := d.StringFixed(2)
	return &s
}
