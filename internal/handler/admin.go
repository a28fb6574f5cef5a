package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/targihasta/fair-lottery/internal/config"
	"github.com/targihasta/fair-lottery/internal/ledger"
	"github.com/targihasta/fair-lottery/internal/model"
	"github.com/targihasta/fair-lottery/internal/registry"
	"github.com/targihasta/fair-lottery/internal/report"
	"github.com/targihasta/fair-lottery/internal/store"
)

// maxBackupBytes caps restore uploads; a fair's worth of orders is a
// few hundred kilobytes at most.
const maxBackupBytes = 10 << 20

// AdminHandler exposes the administrator operations: exhibitor account
// management, credential rotation, reporting, backup export/import and
// the guarded bulk clear.
type AdminHandler struct {
	Cfg        config.Config
	Ledger     *ledger.Ledger
	Registry   *registry.Registry
	Credential *registry.Credential
	Store      *store.Store
}

func NewAdminHandler(cfg config.Config, l *ledger.Ledger, r *registry.Registry, cred *registry.Credential, st *store.Store) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Ledger: l, Registry: r, Credential: cred, Store: st}
}

// ----- exhibitor accounts -----

type addExhibitorReq struct {
	Name string `json:"name"`
}

func (h *AdminHandler) ListExhibitors(c echo.Context) error {
	accounts := h.Registry.List()
	return c.JSON(http.StatusOK, echo.Map{
		"exhibitors": accounts,
		"count":      len(accounts),
	})
}

func (h *AdminHandler) AddExhibitor(c echo.Context) error {
	var req addExhibitorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	acct, err := h.Registry.Add(c.Request().Context(), req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create exhibitor failed"})
	}
	return c.JSON(http.StatusCreated, acct)
}

func (h *AdminHandler) RemoveExhibitor(c echo.Context) error {
	id := c.Param("id")
	if err := h.Registry.Remove(c.Request().Context(), id); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exhibitor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove exhibitor failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- credential -----

type changePasswordReq struct {
	Password string `json:"password"`
}

// ChangePassword rotates the admin credential. The superuser secret is
// a constant and cannot be changed here.
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Password) < 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 5 characters"})
	}
	if err := h.Credential.Change(c.Request().Context(), req.Password); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "change password failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- stats -----

type nameStat struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// Stats aggregates the dashboard numbers: total order value, remaining
// chances and per-exhibitor / per-client breakdowns sorted by value.
func (h *AdminHandler) Stats(c echo.Context) error {
	orders := h.Ledger.List()

	var total float64
	for _, o := range orders {
		total += o.OrderValue
	}
	byExhibitor := aggregate(orders, func(o model.Order) string {
		if o.CreatedBy == "" {
			return "Nieznany"
		}
		return o.CreatedBy
	})
	byClient := aggregate(orders, func(o model.Order) string { return o.ClientName })

	return c.JSON(http.StatusOK, echo.Map{
		"order_count":    len(orders),
		"total_value":    total,
		"eligible_count": len(ledger.Eligible(orders)),
		"by_exhibitor":   byExhibitor,
		"by_client":      byClient,
	})
}

func aggregate(orders []model.Order, key func(model.Order) string) []nameStat {
	acc := map[string]*nameStat{}
	for _, o := range orders {
		k := key(o)
		s, ok := acc[k]
		if !ok {
			s = &nameStat{Name: k}
			acc[k] = s
		}
		s.Count++
		s.Value += o.OrderValue
	}
	out := make([]nameStat, 0, len(acc))
	for _, s := range acc {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// ----- backup / restore / clear -----

// ExportBackup serializes the full system state into the portable
// backup document and serves it as a timestamped JSON download.
func (h *AdminHandler) ExportBackup(c echo.Context) error {
	snap := store.ExportSnapshot(h.Ledger.List(), h.Registry.List(), h.Credential.Current())
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, store.BackupFilename(time.UnixMilli(snap.Timestamp))))
	return c.JSON(http.StatusOK, snap)
}

// ImportBackup validates an uploaded backup document and replaces all
// state wholesale. A failed validation changes nothing.
func (h *AdminHandler) ImportBackup(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBackupBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "read body failed"})
	}

	ctx := c.Request().Context()
	data, err := h.Store.ImportSnapshot(ctx, raw)
	if err != nil {
		if errors.Is(err, store.ErrInvalidBackup) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid backup file"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}

	// ImportSnapshot already persisted the slots; swap the in-memory
	// holders to match.
	if err := h.Ledger.Replace(ctx, data.Orders); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}
	if err := h.Registry.Replace(ctx, data.Exhibitors); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}
	if err := h.Credential.Change(ctx, data.AdminPassword); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"restored_orders":     len(data.Orders),
		"restored_exhibitors": len(data.Exhibitors),
	})
}

// ClearOrders wipes the ledger. The ledger itself takes the automatic
// backup first; the response names the file so the operator can find
// the recovery copy.
func (h *AdminHandler) ClearOrders(c echo.Context) error {
	if err := h.Ledger.Clear(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cleared":    true,
		"backup_dir": h.Cfg.BackupDir,
	})
}

// ReportCSV streams the order report spreadsheet.
func (h *AdminHandler) ReportCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, report.ReportFilename(time.Now())))
	c.Response().WriteHeader(http.StatusOK)
	return report.WriteOrders(c.Response(), h.Ledger.List())
}
