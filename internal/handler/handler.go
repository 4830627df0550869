// Package handler содержит HTTP-обработчики API сервиса продаж.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/ventas-system/internal/middleware"
	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/service"
	"github.com/mmeshcher/ventas-system/internal/validation"
)

// Сообщения об ошибках, возвращаемые клиентам.
const (
	msgNotFound         = "No encontrado"
	msgMalformedJSON    = "JSON mal formado"
	msgInvalidData      = "Datos no válidos"
	msgInternal         = "Error interno del servidor"
	msgMethodNotAllowed = "Método no permitido"
	msgCredsRequired    = "Nombre y contraseña son requeridos"
	msgWrongPassword    = "Contraseña incorrecta"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Ping(ctx context.Context) error

	ListClientes(ctx context.Context) ([]model.Cliente, error)
	GetCliente(ctx context.Context, id int64) (*model.Cliente, error)
	CreateCliente(ctx context.Context, in service.ClienteInput) (*model.Cliente, error)
	UpdateCliente(ctx context.Context, id int64, in service.ClienteInput, partial bool) (*model.Cliente, error)
	DeleteCliente(ctx context.Context, id int64) error

	ListComerciales(ctx context.Context) ([]model.Comercial, error)
	GetComercial(ctx context.Context, id int64) (*model.Comercial, error)
	CreateComercial(ctx context.Context, in service.ComercialInput) (*model.Comercial, error)
	UpdateComercial(ctx context.Context, id int64, in service.ComercialInput, partial bool) (*model.Comercial, error)
	DeleteComercial(ctx context.Context, id int64) error
	AuthenticateComercial(ctx context.Context, nombre, password string) (service.LoginResult, *model.Comercial, error)

	ListPedidos(ctx context.Context) ([]model.Pedido, error)
	ListPedidosByComercial(ctx context.Context, comercialID int64) ([]model.Pedido, error)
	GetPedido(ctx context.Context, id int64) (*model.Pedido, error)
	CreatePedido(ctx context.Context, in service.PedidoInput) (*model.Pedido, error)
	UpdatePedido(ctx context.Context, id int64, in service.PedidoInput, partial bool) (*model.Pedido, error)
	DeletePedido(ctx context.Context, id int64) error
}

// Handler реализует HTTP-обработчики API сервиса продаж.
type Handler struct {
	service Service
	logger  *zap.Logger
	metrics *middleware.Metrics
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов. metrics может быть nil.
func NewHandler(s Service, logger *zap.Logger, metrics *middleware.Metrics) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
		metrics: metrics,
	}
}

type errorResponse struct {
	Error  string                `json:"error"`
	Campos validation.Violations `json:"campos,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + msgInternal + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// pathID читает числовой идентификатор из URL. Нечисловой идентификатор считается отсутствующей записью.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// serviceError переводит ошибку сервиса в HTTP-ответ.
func (h *Handler) serviceError(w http.ResponseWriter, op string, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidData, Campos: vErr.Fields})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		h.logger.Error(op+" error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// Healthz проверяет доступность БД.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
