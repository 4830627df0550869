package handler

import (
	"net/http"

	"github.com/mmeshcher/ventas-system/internal/model"
)

// PedidosPorComercial возвращает заказы указанного представителя, возможно пустой список.
func (h *Handler) PedidosPorComercial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	pedidos, err := h.service.ListPedidosByComercial(r.Context(), id)
	if err != nil {
		h.serviceError(w, "list pedidos by comercial", err)
		return
	}
	if pedidos == nil {
		pedidos = []model.Pedido{}
	}

	writeJSON(w, http.StatusOK, pedidos)
}
