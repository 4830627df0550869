// Package validation содержит функции валидации входных данных.
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Сообщения об ошибках полей возвращаются клиенту как есть.
const (
	MsgRequired    = "Este campo es requerido."
	MsgBlank       = "Este campo no puede estar en blanco."
	MsgNegative    = "Asegúrese de que este valor es mayor o igual a 0."
	MsgInvalidDate = "La fecha tiene un formato incorrecto. Use el formato AAAA-MM-DD."
)

// Violations хранит список ошибок для каждого поля.
type Violations map[string][]string

// Add добавляет ошибку для поля.
func (v Violations) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Empty сообщает, что ошибок нет.
func (v Violations) Empty() bool { return len(v) == 0 }

// Has сообщает, есть ли ошибки у поля.
func (v Violations) Has(field string) bool { return len(v[field]) > 0 }

// Required проверяет, что строковое поле передано и не пустое.
func Required(field string, value *string, v Violations) {
	if value == nil {
		v.Add(field, MsgRequired)
		return
	}
	if strings.TrimSpace(*value) == "" {
		v.Add(field, MsgBlank)
	}
}

// MaxLength проверяет длину строки в символах. nil пропускается.
func MaxLength(field string, value *string, limit int, v Violations) {
	if value == nil {
		return
	}
	if utf8.RuneCountInString(*value) > limit {
		v.Add(field, fmt.Sprintf("Asegúrese de que este campo no tenga más de %d caracteres.", limit))
	}
}

// RangeFloat проверяет попадание значения в отрезок. nil пропускается.
func RangeFloat(field string, value *float64, minVal, maxVal float64, v Violations) {
	if value == nil {
		return
	}
	if *value < minVal || *value > maxVal {
		v.Add(field, fmt.Sprintf("Asegúrese de que este valor está entre %g y %g.", minVal, maxVal))
	}
}

// Date проверяет формат даты. nil пропускается.
func Date(field string, value *string, layout string, v Violations) {
	if value == nil {
		return
	}
	if _, err := time.Parse(layout, *value); err != nil {
		v.Add(field, MsgInvalidDate)
	}
}

// MaxBytes проверяет длину строки в байтах. nil пропускается.
func MaxBytes(field string, value *string, limit int, v Violations) {
	if value != nil && len(*value) > limit {
		v.Add(field, fmt.Sprintf("Asegúrese de que este campo no tenga más de %d bytes.", limit))
	}
}

// IntRange проверяет границы целого значения. nil пропускается.
func IntRange(field string, value *int, minVal, maxVal int, v Violations) {
	if value == nil {
		return
	}
	switch {
	case *value < minVal:
		v.Add(field, fmt.Sprintf("Asegúrese de que este valor es mayor o igual a %d.", minVal))
	case *value > maxVal:
		v.Add(field, fmt.Sprintf("Asegúrese de que este valor es menor o igual a %d.", maxVal))
	}
}

// WholeDigits проверяет число цифр до десятичной точки после округления до places знаков. nil пропускается.
func WholeDigits(field string, value *decimal.Decimal, maxWhole int, places int32, v Violations) {
	if value == nil {
		return
	}
	if value.Round(places).Abs().Cmp(decimal.New(1, int32(maxWhole))) >= 0 {
		v.Add(field, fmt.Sprintf("Asegúrese de que no haya más de %d dígitos antes del punto decimal.", maxWhole))
	}
}
