package service

import (
	"context"
	"math"

	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/validation"
)

// ClienteInput описывает тело запроса на создание или изменение клиента.
// nil означает, что поле не передано.
type ClienteInput struct {
	Nombre    *string `json:"nombre"`
	Apellido1 *string `json:"apellido1"`
	Apellido2 *string `json:"apellido2"`
	Ciudad    *string `json:"ciudad"`
	Categoria *int    `json:"categoria"`
}

// normalize обрезает пробелы по краям строковых полей.
func (in ClienteInput) normalize() ClienteInput {
	in.Nombre = trimSpace(in.Nombre)
	in.Apellido1 = trimSpace(in.Apellido1)
	in.Apellido2 = trimSpace(in.Apellido2)
	in.Ciudad = trimSpace(in.Ciudad)
	return in
}

func (in ClienteInput) validate(partial bool) error {
	v := make(validation.Violations)
	if !partial || in.Nombre != nil {
		validation.Required("nombre", in.Nombre, v)
	}
	if !partial || in.Apellido1 != nil {
		validation.Required("apellido1", in.Apellido1, v)
	}
	validation.MaxLength("nombre", in.Nombre, 100, v)
	validation.MaxLength("apellido1", in.Apellido1, 100, v)
	validation.MaxLength("apellido2", in.Apellido2, 100, v)
	validation.MaxLength("ciudad", in.Ciudad, 100, v)
	validation.IntRange("categoria", in.Categoria, 0, math.MaxInt32, v)
	return checkViolations(v)
}

// apply переносит поля запроса в запись. При полной замене непереданные необязательные поля обнуляются.
func (in ClienteInput) apply(c *model.Cliente, partial bool) {
	if in.Nombre != nil {
		c.Nombre = *in.Nombre
	}
	if in.Apellido1 != nil {
		c.Apellido1 = *in.Apellido1
	}
	if !partial || in.Apellido2 != nil {
		c.Apellido2 = in.Apellido2
	}
	if !partial || in.Ciudad != nil {
		c.Ciudad = in.Ciudad
	}
	if !partial || in.Categoria != nil {
		c.Categoria = in.Categoria
	}
}

// ListClientes возвращает всех клиентов.
func (s *Service) ListClientes(ctx context.Context) ([]model.Cliente, error) {
	return s.repo.ListClientes(ctx)
}

// GetCliente возвращает клиента по идентификатору.
func (s *Service) GetCliente(ctx context.Context, id int64) (*model.Cliente, error) {
	return s.repo.GetCliente(ctx, id)
}

// CreateCliente проверяет и сохраняет нового клиента.
func (s *Service) CreateCliente(ctx context.Context, in ClienteInput) (*model.Cliente, error) {
	in = in.normalize()
	if err := in.validate(false); err != nil {
		return nil, err
	}

	var c model.Cliente
	in.apply(&c, false)
	if err := s.repo.CreateCliente(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCliente изменяет клиента. partial соответствует PATCH, иначе выполняется полная замена.
func (s *Service) UpdateCliente(ctx context.Context, id int64, in ClienteInput, partial bool) (*model.Cliente, error) {
	in = in.normalize()
	c, err := s.repo.GetCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(partial); err != nil {
		return nil, err
	}

	in.apply(c, partial)
	if err := s.repo.UpdateCliente(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCliente удаляет клиента.
func (s *Service) DeleteCliente(ctx context.Context, id int64) error {
	return s.repo.DeleteCliente(ctx, id)
}
