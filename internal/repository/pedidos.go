package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/ventas-system/internal/model"
)

// total читается как текст, чтобы не терять точность numeric.
const pedidoColumns = `id, total::text, to_char(fecha, 'YYYY-MM-DD'), cliente_id, comercial_id`

func scanPedido(row pgx.Row) (*model.Pedido, error) {
	var (
		p     model.Pedido
		total string
	)
	if err := row.Scan(&p.ID, &total, &p.Fecha, &p.ClienteID, &p.ComercialID); err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total %q: %w", total, err)
	}
	p.Total = d

	return &p, nil
}

func (r *PostgresRepository) queryPedidos(ctx context.Context, query string, args ...any) ([]model.Pedido, error) {
	res := make([]model.Pedido, 0)
	err := r.withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		res = res[:0]
		for rows.Next() {
			p, err := scanPedido(rows)
			if err != nil {
				return fmt.Errorf("scan pedido: %w", err)
			}
			res = append(res, *p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListPedidos возвращает все заказы.
func (r *PostgresRepository) ListPedidos(ctx context.Context) ([]model.Pedido, error) {
	res, err := r.queryPedidos(ctx, `SELECT `+pedidoColumns+` FROM pedidos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select pedidos: %w", err)
	}
	return res, nil
}

// ListPedidosByComercial возвращает заказы представителя. Отсутствие представителя ошибкой не считается.
func (r *PostgresRepository) ListPedidosByComercial(ctx context.Context, comercialID int64) ([]model.Pedido, error) {
	res, err := r.queryPedidos(ctx,
		`SELECT `+pedidoColumns+` FROM pedidos WHERE comercial_id = $1 ORDER BY id`, comercialID)
	if err != nil {
		return nil, fmt.Errorf("select pedidos by comercial: %w", err)
	}
	return res, nil
}

// CreatePedido сохраняет заказ. Пустая дата заменяется текущей датой БД.
func (r *PostgresRepository) CreatePedido(ctx context.Context, p *model.Pedido) error {
	var fecha *string
	if p.Fecha != "" {
		fecha = &p.Fecha
	}

	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO pedidos (total, fecha, cliente_id, comercial_id)
			 VALUES ($1::numeric, COALESCE($2::date, CURRENT_DATE), $3, $4)
			 RETURNING id, to_char(fecha, 'YYYY-MM-DD')`,
			p.Total.StringFixed(2), fecha, p.ClienteID, p.ComercialID,
		).Scan(&p.ID, &p.Fecha)
	})
	if err != nil {
		return mapWriteError("insert pedido", err)
	}
	return nil
}

// GetPedido возвращает заказ по идентификатору.
func (r *PostgresRepository) GetPedido(ctx context.Context, id int64) (*model.Pedido, error) {
	var p *model.Pedido
	err := r.withRetry(ctx, func() error {
		var err error
		p, err = scanPedido(r.pool.QueryRow(ctx,
			`SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return p, nil
}

// UpdatePedido заменяет все изменяемые поля заказа.
func (r *PostgresRepository) UpdatePedido(ctx context.Context, p *model.Pedido) error {
	var affected int64
	err := r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE pedidos
			 SET total = $2::numeric, fecha = $3::date, cliente_id = $4, comercial_id = $5
			 WHERE id = $1`,
			p.ID, p.Total.StringFixed(2), p.Fecha, p.ClienteID, p.ComercialID,
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return mapWriteError("update pedido", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePedido удаляет заказ.
func (r *PostgresRepository) DeletePedido(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "pedidos", id)
}
