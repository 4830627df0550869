package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/ventas-system/internal/model"
)

const clienteColumns = `id, nombre, apellido1, apellido2, ciudad, categoria`

func scanCliente(row pgx.Row) (*model.Cliente, error) {
	var c model.Cliente
	if err := row.Scan(&c.ID, &c.Nombre, &c.Apellido1, &c.Apellido2, &c.Ciudad, &c.Categoria); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClientes возвращает всех клиентов в порядке идентификаторов.
func (r *PostgresRepository) ListClientes(ctx context.Context) ([]model.Cliente, error) {
	res := make([]model.Cliente, 0)
	err := r.withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+clienteColumns+` FROM clientes ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		res = res[:0]
		for rows.Next() {
			c, err := scanCliente(rows)
			if err != nil {
				return fmt.Errorf("scan cliente: %w", err)
			}
			res = append(res, *c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("select clientes: %w", err)
	}
	return res, nil
}

// CreateCliente сохраняет нового клиента и заполняет его идентификатор.
func (r *PostgresRepository) CreateCliente(ctx context.Context, c *model.Cliente) error {
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO clientes (nombre, apellido1, apellido2, ciudad, categoria)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			c.Nombre, c.Apellido1, c.Apellido2, c.Ciudad, c.Categoria,
		).Scan(&c.ID)
	})
	if err != nil {
		return mapWriteError("insert cliente", err)
	}
	return nil
}

// GetCliente возвращает клиента по идентификатору.
func (r *PostgresRepository) GetCliente(ctx context.Context, id int64) (*model.Cliente, error) {
	var c *model.Cliente
	err := r.withRetry(ctx, func() error {
		var err error
		c, err = scanCliente(r.pool.QueryRow(ctx,
			`SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// UpdateCliente заменяет все изменяемые поля клиента.
func (r *PostgresRepository) UpdateCliente(ctx context.Context, c *model.Cliente) error {
	var affected int64
	err := r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE clientes
			 SET nombre = $2, apellido1 = $3, apellido2 = $4, ciudad = $5, categoria = $6
			 WHERE id = $1`,
			c.ID, c.Nombre, c.Apellido1, c.Apellido2, c.Ciudad, c.Categoria,
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return mapWriteError("update cliente", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCliente удаляет клиента вместе с его заказами.
func (r *PostgresRepository) DeleteCliente(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "clientes", id)
}

// deleteByID удаляет строку таблицы по идентификатору. table подставляется только из констант пакета.
func (r *PostgresRepository) deleteByID(ctx context.Context, table string, id int64) error {
	var affected int64
	err := r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
