package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/ventas-system/internal/middleware"
	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/service"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса продаж.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	clientes := crud[service.ClienteInput, model.Cliente]{
		name:   "cliente",
		list:   h.service.ListClientes,
		get:    h.service.GetCliente,
		create: h.service.CreateCliente,
		update: h.service.UpdateCliente,
		remove: h.service.DeleteCliente,
	}
	comerciales := crud[service.ComercialInput, model.Comercial]{
		name:   "comercial",
		list:   h.service.ListComerciales,
		get:    h.service.GetComercial,
		create: h.service.CreateComercial,
		update: h.service.UpdateComercial,
		remove: h.service.DeleteComercial,
	}
	pedidos := crud[service.PedidoInput, model.Pedido]{
		name:   "pedido",
		list:   h.service.ListPedidos,
		get:    h.service.GetPedido,
		create: h.service.CreatePedido,
		update: h.service.UpdatePedido,
		remove: h.service.DeletePedido,
	}

	r.Route("/clientes", func(r chi.Router) {
		mountCRUD(r, h, clientes)
	})
	r.Route("/comerciales", func(r chi.Router) {
		mountCRUD(r, h, comerciales)
	})
	r.Route("/pedidos", func(r chi.Router) {
		r.Get("/por-comercial/{id}", h.PedidosPorComercial)
		mountCRUD(r, h, pedidos)
	})

	r.Post("/login", h.Login)
	r.Post("/comercial-id", h.ComercialID)

	r.Get("/healthz", h.Healthz)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	return r
}

func mountCRUD[I any, T any](r chi.Router, h *Handler, c crud[I, T]) {
	r.Get("/", c.List(h))
	r.Post("/", c.Create(h))
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", c.Retrieve(h))
		r.Put("/", c.Update(h, false))
		r.Patch("/", c.Update(h, true))
		r.Delete("/", c.Destroy(h))
	})
}
