package service

import (
	"context"
	"errors"

	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/password"
	"github.com/mmeshcher/ventas-system/internal/repository"
	"github.com/mmeshcher/ventas-system/internal/validation"
)

// ComercialInput описывает тело запроса на создание или изменение представителя.
type ComercialInput struct {
	Nombre    *string  `json:"nombre"`
	Apellido1 *string  `json:"apellido1"`
	Apellido2 *string  `json:"apellido2"`
	Comision  *float64 `json:"comision"`
	Password  *string  `json:"password"`
}

// bcryptMaxBytes ограничение bcrypt на длину пароля.
const bcryptMaxBytes = 72

// normalize обрезает пробелы по краям имени и фамилий. Пароль не меняется.
func (in ComercialInput) normalize() ComercialInput {
	in.Nombre = trimSpace(in.Nombre)
	in.Apellido1 = trimSpace(in.Apellido1)
	in.Apellido2 = trimSpace(in.Apellido2)
	return in
}

func (in ComercialInput) validate(partial, requirePassword bool) error {
	v := make(validation.Violations)
	if !partial || in.Nombre != nil {
		validation.Required("nombre", in.Nombre, v)
	}
	if !partial || in.Apellido1 != nil {
		validation.Required("apellido1", in.Apellido1, v)
	}
	if requirePassword || in.Password != nil {
		validation.Required("password", in.Password, v)
	}
	validation.MaxLength("nombre", in.Nombre, 100, v)
	validation.MaxLength("apellido1", in.Apellido1, 100, v)
	validation.MaxLength("apellido2", in.Apellido2, 100, v)
	validation.MaxBytes("password", in.Password, bcryptMaxBytes, v)
	validation.RangeFloat("comision", in.Comision, 0, 1, v)
	return checkViolations(v)
}

func (in ComercialInput) apply(c *model.Comercial, partial bool) error {
	if in.Nombre != nil {
		c.Nombre = *in.Nombre
	}
	if in.Apellido1 != nil {
		c.Apellido1 = *in.Apellido1
	}
	if !partial || in.Apellido2 != nil {
		c.Apellido2 = in.Apellido2
	}
	if !partial || in.Comision != nil {
		c.Comision = in.Comision
	}
	// Без нового пароля сохраняется прежний хеш.
	if in.Password != nil {
		hashed, err := password.Hash(*in.Password)
		if err != nil {
			return err
		}
		c.PasswordHash = hashed
	}
	return nil
}

// ListComerciales возвращает всех представителей.
func (s *Service) ListComerciales(ctx context.Context) ([]model.Comercial, error) {
	return s.repo.ListComerciales(ctx)
}

// GetComercial возвращает представителя по идентификатору.
func (s *Service) GetComercial(ctx context.Context, id int64) (*model.Comercial, error) {
	return s.repo.GetComercial(ctx, id)
}

// CreateComercial проверяет данные, хеширует пароль и сохраняет представителя.
func (s *Service) CreateComercial(ctx context.Context, in ComercialInput) (*model.Comercial, error) {
	in = in.normalize()
	if err := in.validate(false, true); err != nil {
		return nil, err
	}

	var c model.Comercial
	if err := in.apply(&c, false); err != nil {
		return nil, err
	}
	if err := s.repo.CreateComercial(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComercial изменяет представителя. Пароль меняется только если передан.
func (s *Service) UpdateComercial(ctx context.Context, id int64, in ComercialInput, partial bool) (*model.Comercial, error) {
	in = in.normalize()
	c, err := s.repo.GetComercial(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(partial, false); err != nil {
		return nil, err
	}

	if err := in.apply(c, partial); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateComercial(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComercial удаляет представителя.
func (s *Service) DeleteComercial(ctx context.Context, id int64) error {
	return s.repo.DeleteComercial(ctx, id)
}

// LoginResult описывает исход проверки учётных данных представителя.
type LoginResult int

const (
	// LoginOK означает, что представитель найден и пароль совпал.
	LoginOK LoginResult = iota
	// LoginNotFound означает, что представителя с таким именем нет.
	LoginNotFound
	// LoginBadPassword означает, что пароль не совпал.
	LoginBadPassword
)

// AuthenticateComercial ищет представителя по имени и проверяет пароль.
// Пароль проверяется только после того, как представитель найден.
func (s *Service) AuthenticateComercial(ctx context.Context, nombre, raw string) (LoginResult, *model.Comercial, error) {
	c, err := s.repo.GetComercialByNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginNotFound, nil, nil
		}
		return LoginNotFound, nil, err
	}

	if !password.Check(c.PasswordHash, raw) {
		return LoginBadPassword, nil, nil
	}

	return LoginOK, c, nil
}
