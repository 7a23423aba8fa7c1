// Package backend cliente del backend de identidad. Toda llamada reenvía la
// credencial de sesión como cookie, intercambia JSON y considera éxito
// únicamente un status 2xx.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/dto"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
)

// CredentialCookie nombre de la cookie que transporta el token.
const CredentialCookie = "rx_token"

// Rutas fijas del contrato con el backend.
const (
	pathRegister = "/auth/register"
	pathLogin    = "/auth/login"
	pathLogout   = "/auth/logout"
	pathProfile  = "/auth/profile"
)

const maxBody = 1 << 20

// ErrorRecorder cuenta fallos por operación (métricas).
type ErrorRecorder interface {
	ObserveBackendError(operation string)
}

// Error respuesta no-2xx o fallo de transporte. Unwrap devuelve
// domain.ErrUnauthorized (401/403), domain.ErrInvalidInput (400/422) o
// domain.ErrUpstream (resto).
type Error struct {
	Op      string
	Status  int // 0 = fallo de transporte
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("backend %s: HTTP %d: %s", e.Op, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.kind }

// Client adaptador HTTP hacia el backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   ErrorRecorder
}

// NewClient construye el cliente. timeout acota cada llamada además del ctx.
func NewClient(baseURL string, timeout time.Duration, recorder ErrorRecorder) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		recorder:   recorder,
	}
}

// Profile verifica la credencial contra GET /auth/profile y devuelve el
// usuario con sus colecciones. El rol se interpreta con entity.ParseRole.
func (c *Client) Profile(ctx context.Context, credential string) (*entity.User, error) {
	var out dto.ProfileResponse
	if err := c.do(ctx, "profile", http.MethodGet, pathProfile, credential, nil, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Login autentica y devuelve el token emitido por el backend.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, pathLogin, "", in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, c.fail(&Error{Op: "login", Status: http.StatusOK, Message: "respuesta sin token", kind: domain.ErrUpstream})
	}
	return &out, nil
}

// Register crea el usuario; devuelve el mensaje del backend.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (string, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, "register", http.MethodPost, pathRegister, "", in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Logout pide al backend revocar la credencial.
func (c *Client) Logout(ctx context.Context, credential string) error {
	return c.do(ctx, "logout", http.MethodPost, pathLogout, credential, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path, credential string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend %s: serializar request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend %s: crear request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.AddCookie(&http.Cookie{Name: CredentialCookie, Value: credential})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := err.Error()
		if ctx.Err() != nil {
			msg = "timeout o cancelación: " + ctx.Err().Error()
		}
		return c.fail(&Error{Op: op, Message: msg, kind: domain.ErrUpstream})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return c.fail(&Error{Op: op, Status: resp.StatusCode, Message: "leer respuesta: " + err.Error(), kind: domain.ErrUpstream})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(&Error{Op: op, Status: resp.StatusCode, Message: messageOf(raw), kind: kindOf(resp.StatusCode)})
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(&Error{Op: op, Status: resp.StatusCode, Message: "payload ilegible: " + err.Error(), kind: domain.ErrUpstream})
	}
	return nil
}

func (c *Client) fail(e *Error) error {
	if c.recorder != nil {
		c.recorder.ObserveBackendError(e.Op)
	}
	return e
}

func kindOf(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return domain.ErrUpstream
	}
}

// messageOf extrae "message" del cuerpo de error; si no es JSON usa el texto.
func messageOf(raw []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &m) == nil && m.Message != "" {
		return m.Message
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// MessageOf devuelve el mensaje del backend para mostrar al usuario, o
// fallback si err no viene del backend.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 && e.Message != "" {
		return e.Message
	}
	return fallback
}
