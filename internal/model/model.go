// Package model содержит доменные сущности сервиса продаж.
package model

import "github.com/shopspring/decimal"

// DateLayout задаёт формат даты заказа в API и в БД.
const DateLayout = "2006-01-02"

// Cliente представляет клиента, оформляющего заказы.
type Cliente struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Apellido1 string  `json:"apellido1"`
	Apellido2 *string `json:"apellido2"`
	Ciudad    *string `json:"ciudad"`
	Categoria *int    `json:"categoria"`
}

// Comercial представляет торгового представителя.
// PasswordHash никогда не сериализуется в ответы API.
type Comercial struct {
	ID           int64    `json:"id"`
	Nombre       string   `json:"nombre"`
	Apellido1    string   `json:"apellido1"`
	Apellido2    *string  `json:"apellido2"`
	Comision     *float64 `json:"comision"`
	PasswordHash string   `json:"-"`
}

// Pedido описывает заказ, связывающий клиента и торгового представителя.
type Pedido struct {
	ID          int64           `json:"id"`
	Total       decimal.Decimal `json:"total"`
	Fecha       string          `json:"fecha"`
	ClienteID   int64           `json:"cliente"`
	ComercialID int64           `json:"comercial"`
}

// ComercialPublic содержит очищенные данные представителя для ответа на вход.
type ComercialPublic struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Apellido1 string  `json:"apellido1"`
	Apellido2 *string `json:"apellido2"`
}

// Public возвращает данные представителя без учётных данных.
func (c Comercial) Public() ComercialPublic {
	return ComercialPublic{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Apellido1: c.Apellido1,
		Apellido2: c.Apellido2,
	}
}
