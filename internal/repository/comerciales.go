package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/ventas-system/internal/model"
)

const comercialColumns = `id, nombre, apellido1, apellido2, comision, password`

func scanComercial(row pgx.Row) (*model.Comercial, error) {
	var c model.Comercial
	if err := row.Scan(&c.ID, &c.Nombre, &c.Apellido1, &c.Apellido2, &c.Comision, &c.PasswordHash); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComerciales возвращает всех торговых представителей.
func (r *PostgresRepository) ListComerciales(ctx context.Context) ([]model.Comercial, error) {
	res := make([]model.Comercial, 0)
	err := r.withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+comercialColumns+` FROM comerciales ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		res = res[:0]
		for rows.Next() {
			c, err := scanComercial(rows)
			if err != nil {
				return fmt.Errorf("scan comercial: %w", err)
			}
			res = append(res, *c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("select comerciales: %w", err)
	}
	return res, nil
}

// CreateComercial сохраняет представителя. Пароль должен быть уже захеширован.
func (r *PostgresRepository) CreateComercial(ctx context.Context, c *model.Comercial) error {
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO comerciales (nombre, apellido1, apellido2, comision, password)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			c.Nombre, c.Apellido1, c.Apellido2, c.Comision, c.PasswordHash,
		).Scan(&c.ID)
	})
	if err != nil {
		return mapWriteError("insert comercial", err)
	}
	return nil
}

// GetComercial возвращает представителя по идентификатору.
func (r *PostgresRepository) GetComercial(ctx context.Context, id int64) (*model.Comercial, error) {
	return r.getComercial(ctx, `SELECT `+comercialColumns+` FROM comerciales WHERE id = $1`, id)
}

// GetComercialByNombre ищет представителя по имени. Имя не уникально, берётся первая запись.
func (r *PostgresRepository) GetComercialByNombre(ctx context.Context, nombre string) (*model.Comercial, error) {
	return r.getComercial(ctx,
		`SELECT `+comercialColumns+` FROM comerciales WHERE nombre = $1 ORDER BY id LIMIT 1`, nombre)
}

func (r *PostgresRepository) getComercial(ctx context.Context, query string, arg any) (*model.Comercial, error) {
	var c *model.Comercial
	err := r.withRetry(ctx, func() error {
		var err error
		c, err = scanComercial(r.pool.QueryRow(ctx, query, arg))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get comercial: %w", err)
	}
	return c, nil
}

// UpdateComercial заменяет все изменяемые поля представителя, включая хеш пароля.
func (r *PostgresRepository) UpdateComercial(ctx context.Context, c *model.Comercial) error {
	var affected int64
	err := r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE comerciales
			 SET nombre = $2, apellido1 = $3, apellido2 = $4, comision = $5, password = $6
			 WHERE id = $1`,
			c.ID, c.Nombre, c.Apellido1, c.Apellido2, c.Comision, c.PasswordHash,
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return mapWriteError("update comercial", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComercial удаляет представителя вместе с его заказами.
func (r *PostgresRepository) DeleteComercial(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "comerciales", id)
}
