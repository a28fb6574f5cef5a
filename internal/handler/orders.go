package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/targihasta/fair-lottery/internal/ledger"
	"github.com/targihasta/fair-lottery/internal/middleware"
	"github.com/targihasta/fair-lottery/internal/model"
)

// OrderHandler exposes the exhibitor-facing ledger operations:
// registering a client order and listing the caller's tickets.
type OrderHandler struct {
	Ledger *ledger.Ledger
}

func NewOrderHandler(l *ledger.Ledger) *OrderHandler {
	return &OrderHandler{Ledger: l}
}

type createOrderReq struct {
	ClientName string  `json:"client_name"`
	OrderValue float64 `json:"order_value"`
}

// Create appends a new order and returns the issued ticket. Exhibitor
// sessions stamp their attribution onto the order; admin-entered
// orders carry none.
func (h *OrderHandler) Create(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}

	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ClientName = strings.TrimSpace(req.ClientName)

	var attr ledger.Attribution
	switch sess.Role {
	case model.RoleExhibitor:
		attr = ledger.Attribution{ExhibitorID: sess.ExhibitorID, Name: sess.Name}
	case model.RoleAdmin, model.RoleSuperuser:
		// no attribution for admin-entered orders
	}

	order, err := h.Ledger.Append(c.Request().Context(), req.ClientName, req.OrderValue, attr)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidOrder) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}
	return c.JSON(http.StatusCreated, order)
}

// List returns orders visible to the caller: admins see the whole
// ledger, exhibitors only the orders they registered.
func (h *OrderHandler) List(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}

	var orders []model.Order
	switch sess.Role {
	case model.RoleAdmin, model.RoleSuperuser:
		orders = h.Ledger.List()
	case model.RoleExhibitor:
		orders = h.Ledger.ListByExhibitor(sess.ExhibitorID)
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"orders": orders,
		"count":  len(orders),
	})
}
