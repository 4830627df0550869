package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/notify"
	"github.com/mmeshcher/ventas-system/internal/repository"
	"github.com/mmeshcher/ventas-system/internal/validation"
)

// Точность столбца pedidos.total: NUMERIC(10,2).
const (
	totalWholeDigits = 8
	totalPlaces      = 2
)

// PedidoInput описывает тело запроса на создание или изменение заказа.
type PedidoInput struct {
	Total     *decimal.Decimal `json:"total"`
	Fecha     *string          `json:"fecha"`
	Cliente   *int64           `json:"cliente"`
	Comercial *int64           `json:"comercial"`
}

func (in PedidoInput) validate(partial bool) validation.Violations {
	v := make(validation.Violations)
	if !partial {
		if in.Total == nil {
			v.Add("total", validation.MsgRequired)
		}
		if in.Cliente == nil {
			v.Add("cliente", validation.MsgRequired)
		}
		if in.Comercial == nil {
			v.Add("comercial", validation.MsgRequired)
		}
	}
	if in.Total != nil && in.Total.IsNegative() {
		v.Add("total", validation.MsgNegative)
	}
	validation.WholeDigits("total", in.Total, totalWholeDigits, totalPlaces, v)
	validation.Date("fecha", in.Fecha, model.DateLayout, v)
	return v
}

func invalidPK(id int64) string {
	return fmt.Sprintf("Clave primaria \"%d\" inválida - objeto no existe.", id)
}

// pedidoRefs содержит клиента и представителя, на которых ссылается заказ.
type pedidoRefs struct {
	cliente   *model.Cliente
	comercial *model.Comercial
}

// resolveRefs загружает связанные записи и добавляет ошибки полей для отсутствующих.
func (s *Service) resolveRefs(ctx context.Context, clienteID, comercialID int64, v validation.Violations) (pedidoRefs, error) {
	var refs pedidoRefs

	cliente, err := s.repo.GetCliente(ctx, clienteID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		v.Add("cliente", invalidPK(clienteID))
	case err != nil:
		return refs, err
	default:
		refs.cliente = cliente
	}

	comercial, err := s.repo.GetComercial(ctx, comercialID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		v.Add("comercial", invalidPK(comercialID))
	case err != nil:
		return refs, err
	default:
		refs.comercial = comercial
	}

	return refs, nil
}

// ListPedidos возвращает все заказы.
func (s *Service) ListPedidos(ctx context.Context) ([]model.Pedido, error) {
	return s.repo.ListPedidos(ctx)
}

// ListPedidosByComercial возвращает заказы представителя.
func (s *Service) ListPedidosByComercial(ctx context.Context, comercialID int64) ([]model.Pedido, error) {
	return s.repo.ListPedidosByComercial(ctx, comercialID)
}

// GetPedido возвращает заказ по идентификатору.
func (s *Service) GetPedido(ctx context.Context, id int64) (*model.Pedido, error) {
	return s.repo.GetPedido(ctx, id)
}

// CreatePedido проверяет ссылки, сохраняет заказ и отправляет письмо-подтверждение.
// Ошибка отправки письма только логируется и не влияет на результат.
func (s *Service) CreatePedido(ctx context.Context, in PedidoInput) (*model.Pedido, error) {
	v := in.validate(false)
	if !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}

	refs, err := s.resolveRefs(ctx, *in.Cliente, *in.Comercial, v)
	if err != nil {
		return nil, err
	}
	if err := checkViolations(v); err != nil {
		return nil, err
	}

	p := model.Pedido{
		Total:       in.Total.Round(totalPlaces),
		ClienteID:   *in.Cliente,
		ComercialID: *in.Comercial,
	}
	if in.Fecha != nil {
		p.Fecha = *in.Fecha
	}

	if err := s.repo.CreatePedido(ctx, &p); err != nil {
		return nil, referenceError(err)
	}

	// Отмена запроса не прерывает письмо о сохранённом заказе.
	s.notifyPedido(context.WithoutCancel(ctx), p, refs)

	return &p, nil
}

func (s *Service) notifyPedido(ctx context.Context, p model.Pedido, refs pedidoRefs) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.SendPedidoConfirmation(ctx, notify.Confirmation{
		Pedido:    p,
		Cliente:   *refs.cliente,
		Comercial: *refs.comercial,
	})
	if err != nil {
		s.logger.Error("send pedido confirmation error", zap.Error(err), zap.Int64("pedido", p.ID))
		return
	}
	s.logger.Info("pedido confirmation sent", zap.Int64("pedido", p.ID))
}

// UpdatePedido изменяет заказ. Письмо при изменении не отправляется.
func (s *Service) UpdatePedido(ctx context.Context, id int64, in PedidoInput, partial bool) (*model.Pedido, error) {
	p, err := s.repo.GetPedido(ctx, id)
	if err != nil {
		return nil, err
	}

	v := in.validate(partial)
	if !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}

	if in.Total != nil {
		p.Total = in.Total.Round(totalPlaces)
	}
	if in.Fecha != nil {
		p.Fecha = *in.Fecha
	}
	if in.Cliente != nil {
		p.ClienteID = *in.Cliente
	}
	if in.Comercial != nil {
		p.ComercialID = *in.Comercial
	}

	if _, err := s.resolveRefs(ctx, p.ClienteID, p.ComercialID, v); err != nil {
		return nil, err
	}
	if err := checkViolations(v); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePedido(ctx, p); err != nil {
		return nil, referenceError(err)
	}
	return p, nil
}

// DeletePedido удаляет заказ.
func (s *Service) DeletePedido(ctx context.Context, id int64) error {
	return s.repo.DeletePedido(ctx, id)
}
