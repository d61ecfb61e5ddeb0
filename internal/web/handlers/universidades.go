package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Health reports whether the process and its database are reachable
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			h.jsonError(w, msgUnavailable, http.StatusServiceUnavailable)
			return
		}
	}
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListUniversidades handles GET /api/universidades
func (h *Handlers) ListUniversidades(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalog.ListAll(r.Context())
	respond(h, w, r, out, err)
}

// ListUniversidadesPorTipo handles GET /api/universidades/tipo/{tipo}
func (h *Handlers) ListUniversidadesPorTipo(w http.ResponseWriter, r *http.Request) {
	tipo, err := h.tipoParam(r)
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.ListByType(r.Context(), tipo)
	respond(h, w, r, out, err)
}

// ListUniversidadesPorArea handles GET /api/universidades/area/{id}
func (h *Handlers) ListUniversidadesPorArea(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.ListByArea(r.Context(), id)
	respond(h, w, r, out, err)
}

// GetUniversidad handles GET /api/universidades/{id}
func (h *Handlers) GetUniversidad(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.GetByID(r.Context(), id)
	respond(h, w, r, out, err)
}

// GetOferta handles GET /api/universidades/{id}/oferta
func (h *Handlers) GetOferta(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.GetOferta(r.Context(), id)
	respond(h, w, r, out, err)
}

// GetMultimedia handles GET /api/universidades/{id}/multimedia
func (h *Handlers) GetMultimedia(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.GetMultimedia(r.Context(), id)
	respond(h, w, r, out, err)
}

// GetDireccion handles GET /api/universidades/{id}/direccion
func (h *Handlers) GetDireccion(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.GetDireccion(r.Context(), id)
	respond(h, w, r, out, err)
}

// GetUbicacion handles GET /api/universidades/{id}/ubicacion
func (h *Handlers) GetUbicacion(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.invalidParam(w, err)
		return
	}
	out, err := h.catalog.GetUbicacion(r.Context(), id)
	respond(h, w, r, out, err)
}

func (h *Handlers) invalidParam(w http.ResponseWriter, err error) {
	log.Debug().Err(err).Msg("Rejected request parameter")
	h.jsonError(w, msgInvalidParam, http.StatusBadRequest)
}
