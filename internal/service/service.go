// Package service реализует бизнес-логику сервиса продаж.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/notify"
	"github.com/mmeshcher/ventas-system/internal/repository"
	"github.com/mmeshcher/ventas-system/internal/validation"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	Ping(ctx context.Context) error

	ListClientes(ctx context.Context) ([]model.Cliente, error)
	CreateCliente(ctx context.Context, c *model.Cliente) error
	GetCliente(ctx context.Context, id int64) (*model.Cliente, error)
	UpdateCliente(ctx context.Context, c *model.Cliente) error
	DeleteCliente(ctx context.Context, id int64) error

	ListComerciales(ctx context.Context) ([]model.Comercial, error)
	CreateComercial(ctx context.Context, c *model.Comercial) error
	GetComercial(ctx context.Context, id int64) (*model.Comercial, error)
	GetComercialByNombre(ctx context.Context, nombre string) (*model.Comercial, error)
	UpdateComercial(ctx context.Context, c *model.Comercial) error
	DeleteComercial(ctx context.Context, id int64) error

	ListPedidos(ctx context.Context) ([]model.Pedido, error)
	ListPedidosByComercial(ctx context.Context, comercialID int64) ([]model.Pedido, error)
	CreatePedido(ctx context.Context, p *model.Pedido) error
	GetPedido(ctx context.Context, id int64) (*model.Pedido, error)
	UpdatePedido(ctx context.Context, p *model.Pedido) error
	DeletePedido(ctx context.Context, id int64) error
}

// Notifier отправляет подтверждение о созданном заказе.
type Notifier interface {
	SendPedidoConfirmation(ctx context.Context, c notify.Confirmation) error
}

// ErrNotFound возвращается, если запрошенная запись отсутствует.
var ErrNotFound = repository.ErrNotFound

// ValidationError содержит ошибки валидации по полям.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// trimSpace возвращает копию строки без пробелов по краям. nil остаётся nil.
func trimSpace(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func checkViolations(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Fields: v}
}

// Service содержит бизнес-логику сервиса продаж.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewService создаёт сервис. notifier может быть nil, тогда письма не отправляются.
func NewService(repo Repository, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// Ping проверяет доступность хранилища.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// referenceError переводит нарушение внешнего ключа, пойманное БД, в ошибку валидации.
func referenceError(err error) error {
	if errors.Is(err, repository.ErrInvalidReference) {
		v := make(validation.Violations)
		v.Add("non_field_errors", "El cliente o el comercial indicado no existe.")
		return &ValidationError{Fields: v}
	}
	return err
}
