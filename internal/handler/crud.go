package handler

import (
	"context"
	"net/http"
)

// crud описывает операции над одной сущностью для обобщённых обработчиков.
// I: тип тела запроса, T: тип записи.
type crud[I any, T any] struct {
	name   string
	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, in I) (*T, error)
	update func(ctx context.Context, id int64, in I, partial bool) (*T, error)
	remove func(ctx context.Context, id int64) error
}

func (c crud[I, T]) List(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := c.list(r.Context())
		if err != nil {
			h.serviceError(w, "list "+c.name, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (c crud[I, T]) Create(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgMalformedJSON)
			return
		}

		item, err := c.create(r.Context(), in)
		if err != nil {
			h.serviceError(w, "create "+c.name, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func (c crud[I, T]) Retrieve(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		item, err := c.get(r.Context(), id)
		if err != nil {
			h.serviceError(w, "get "+c.name, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

// Update обслуживает PUT (partial = false) и PATCH (partial = true).
func (c crud[I, T]) Update(h *Handler, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		var in I
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgMalformedJSON)
			return
		}

		item, err := c.update(r.Context(), id, in, partial)
		if err != nil {
			h.serviceError(w, "update "+c.name, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (c crud[I, T]) Destroy(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		if err := c.remove(r.Context(), id); err != nil {
			h.serviceError(w, "delete "+c.name, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
