package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/targihasta/fair-lottery/internal/drawing"
	"github.com/targihasta/fair-lottery/internal/greeting"
	"github.com/targihasta/fair-lottery/internal/ledger"
	"github.com/targihasta/fair-lottery/internal/queue"
	queue_publisher "github.com/targihasta/fair-lottery/internal/service"
)

// DrawingHandler runs the prize drawing: eligibility, selection,
// winner commit and the celebratory extras (message, broker event).
type DrawingHandler struct {
	Ledger *ledger.Ledger
	Engine *drawing.Engine
}

func NewDrawingHandler(l *ledger.Ledger, e *drawing.Engine) *DrawingHandler {
	return &DrawingHandler{Ledger: l, Engine: e}
}

// Candidates returns the current eligible set so the wheel view can
// render its segments and the draw button can be disabled at zero.
func (h *DrawingHandler) Candidates(c echo.Context) error {
	candidates := h.Ledger.Eligible()
	return c.JSON(http.StatusOK, echo.Map{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// Draw selects one winner among the non-winning orders and commits it.
// The winner is fixed the moment the engine picks it; the wheel
// animation on the client is pure presentation. A draw already in
// flight yields 409, an empty candidate set 422.
func (h *DrawingHandler) Draw(c echo.Context) error {
	winner, err := h.Engine.Select(h.Ledger.Eligible())
	if err != nil {
		switch {
		case errors.Is(err, drawing.ErrDrawInProgress):
			return c.JSON(http.StatusConflict, echo.Map{"error": "draw already in progress"})
		case errors.Is(err, drawing.ErrNoCandidates):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no eligible tickets"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "draw failed"})
		}
	}
	defer h.Engine.Settle()

	ctx := c.Request().Context()
	if err := h.Ledger.MarkWinner(ctx, winner.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit winner failed"})
	}

	// Best effort: the draw stands even if the broker is down.
	event := queue.WinnerDrawnEvent{
		OrderID:       winner.ID,
		TicketNumber:  winner.TicketNumber,
		ClientName:    winner.ClientName,
		OrderValue:    winner.OrderValue,
		ExhibitorID:   winner.ExhibitorID,
		ExhibitorName: winner.CreatedBy,
		DrawnAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishWinnerDrawn(ctx, event); err != nil {
		log.Printf("drawing: winner event not published: %v", err)
	}

	winner.IsWinner = true
	return c.JSON(http.StatusOK, echo.Map{
		"winner":  winner,
		"message": greeting.ForWinner(winner),
	})
}
