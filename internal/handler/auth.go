package handler

import (
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/targihasta/fair-lottery/internal/config"
	"github.com/targihasta/fair-lottery/internal/middleware"
	"github.com/targihasta/fair-lottery/internal/model"
	"github.com/targihasta/fair-lottery/internal/registry"
	"github.com/targihasta/fair-lottery/internal/utils"
)

// AuthHandler bundles dependencies for the two login surfaces: the
// admin password check and the exhibitor access-code lookup. Both are
// exact case-sensitive string comparisons against stored values; there
// is no password hashing anywhere in this product, the credential has
// to round-trip in plaintext through the backup document.
type AuthHandler struct {
	Cfg        config.Config
	Registry   *registry.Registry
	Credential *registry.Credential
}

func NewAuthHandler(cfg config.Config, r *registry.Registry, cred *registry.Credential) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Registry: r, Credential: cred}
}

// ----- DTOs -----

type adminLoginReq struct {
	Password string `json:"password"`
}
type exhibitorLoginReq struct {
	AccessCode string `json:"access_code"`
}

type sessionPart struct {
	Role        model.Role `json:"role"`
	Name        string     `json:"name"`
	ExhibitorID string     `json:"exhibitor_id,omitempty"`
}
type authResp struct {
	Session sessionPart `json:"session"`
	Token   string      `json:"token"`
	Expires string      `json:"expires"`
}

// AdminLogin verifies the submitted password against the stored admin
// credential, or against the fixed superuser secret which grants the
// elevated role. Anything else is a 401.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}

	var sess model.Session
	switch req.Password {
	case h.Credential.Current():
		sess = model.Session{Role: model.RoleAdmin, Name: "Administrator"}
	case registry.SuperuserPassword:
		sess = model.Session{Role: model.RoleSuperuser, Name: "SuperUser"}
	default:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	return h.issue(c, sess)
}

// ExhibitorLogin matches the submitted access code against the account
// registry. Leading and trailing whitespace is trimmed, the code
// itself is compared exactly.
func (h *AuthHandler) ExhibitorLogin(c echo.Context) error {
	var req exhibitorLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code := strings.TrimSpace(req.AccessCode)
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "access_code required"})
	}

	acct, ok := h.Registry.FindByCode(code)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid access code"})
	}
	return h.issue(c, model.Session{
		Role:        model.RoleExhibitor,
		Name:        acct.Name,
		ExhibitorID: acct.ID,
	})
}

// Me returns the caller's session as reconstructed from the token.
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	return c.JSON(http.StatusOK, sessionPart{
		Role:        sess.Role,
		Name:        sess.Name,
		ExhibitorID: sess.ExhibitorID,
	})
}

func (h *AuthHandler) issue(c echo.Context, sess model.Session) error {
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, sess, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Session: sessionPart{Role: sess.Role, Name: sess.Name, ExhibitorID: sess.ExhibitorID},
		Token:   tok.Token,
		Expires: tok.Exp.Format("2006-01-02T15:04:05Z07:00"),
	})
}
