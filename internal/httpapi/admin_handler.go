package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/orders"
)

type OrderService interface {
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	SearchOrders(ctx context.Context, req orders.SearchRequest) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.Order, error)
}

type AdminHandler struct {
	orders  OrderService
	logger  *slog.Logger
	timeout time.Duration
}

func NewAdminHandler(orders OrderService, logger *slog.Logger, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		orders:  orders,
		logger:  logger,
		timeout: timeout,
	}
}

type OrderDTO struct {
	ID                uuid.UUID  `json:"id"`
	OrderNumber       string     `json:"order_number"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	TotalAmount       string     `json:"total_amount"`
	Currency          string     `json:"currency"`
	CustomerName      string     `json:"customer_name"`
	CustomerEmail     string     `json:"customer_email"`
	RazorpayOrderID   *string    `json:"razorpay_order_id"`
	RazorpayPaymentID *string    `json:"razorpay_payment_id"`
	RazorpayRefundID  *string    `json:"razorpay_refund_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ConfirmedAt       *time.Time `json:"confirmed_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	Success bool     `json:"success"`
	Order   OrderDTO `json:"order"`
}

type OrdersResponse struct {
	Success bool       `json:"success"`
	Orders  []OrderDTO `json:"orders"`
}

func convertOrder(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		TotalAmount:       o.Total.Amount.StringFixed(2),
		Currency:          o.Total.Currency.String(),
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		RazorpayOrderID:   o.ProviderOrderID,
		RazorpayPaymentID: o.ProviderPaymentID,
		RazorpayRefundID:  o.ProviderRefundID,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		ConfirmedAt:       o.ConfirmedAt,
	}
}

// GET /api/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()

	req := orders.SearchRequest{
		Statuses:        splitList(q.Get("status")),
		PaymentStatuses: splitList(q.Get("payment_status")),
		CustomerEmails:  splitList(q.Get("customer_email")),
	}

	var err error
	if req.CreatedAfter, err = parseTime(q.Get("created_after")); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "created_after must be RFC 3339")
		return
	}
	if req.CreatedBefore, err = parseTime(q.Get("created_before")); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "created_before must be RFC 3339")
		return
	}

	found, err := h.orders.SearchOrders(ctx, req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	dtos := make([]OrderDTO, 0, len(found))
	for _, o := range found {
		dtos = append(dtos, convertOrder(o))
	}

	respondJSON(w, http.StatusOK, OrdersResponse{Success: true, Orders: dtos})
}

// GET /api/admin/orders/{order_id}
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, chi.URLParam(r, "order_id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{Success: true, Order: convertOrder(order)})
}

// PATCH /api/admin/orders/{order_id}/status
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	if err := validateJSONSchema(updateStatusLoader, body); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "status is required")
		return
	}

	var req UpdateStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(ctx, chi.URLParam(r, "order_id"), req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// audit trail of who moved the order
	var actor, subject string
	if claims, ok := AdminClaimsFrom(r.Context()); ok {
		actor, subject = claims.Email, claims.Subject
	}
	h.logger.Info("admin changed order status",
		"order_id", order.ID,
		"status", order.Status,
		"admin_email", actor,
		"admin_id", subject,
		"request_id", middleware.GetReqID(r.Context()))

	respondJSON(w, http.StatusOK, OrderResponse{Success: true, Order: convertOrder(order)})
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
