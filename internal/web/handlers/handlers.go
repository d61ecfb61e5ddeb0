package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/unimx/universidades/internal/universidad"
)

// Catalog is the read surface served over HTTP. *universidad.Reader satisfies it.
type Catalog interface {
	ListAll(ctx context.Context) ([]universidad.Resumen, error)
	ListByType(ctx context.Context, tipo universidad.Tipo) ([]universidad.Resumen, error)
	GetByID(ctx context.Context, id int64) (*universidad.Detalle, error)
	ListByArea(ctx context.Context, areaID int64) ([]universidad.CarreraArea, error)
	GetOferta(ctx context.Context, id int64) ([]universidad.Carrera, error)
	GetMultimedia(ctx context.Context, id int64) (*universidad.Multimedia, error)
	GetDireccion(ctx context.Context, id int64) (*universidad.Direccion, error)
	GetUbicacion(ctx context.Context, id int64) (*universidad.Ubicacion, error)
}

// Pinger reports database health
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Response messages
const (
	msgNotFound     = "No se encontraron registros"
	msgQueryFailure = "Error al consultar la base de datos"
	msgInvalidParam = "Parámetro inválido"
	msgUnavailable  = "Base de datos no disponible"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	catalog  Catalog
	db       Pinger
	validate *validator.Validate
}

// New creates a new Handlers instance. db may be nil, in which case the health
// check only reports the process as up.
func New(catalog Catalog, db Pinger) *Handlers {
	return &Handlers{
		catalog:  catalog,
		db:       db,
		validate: validator.New(),
	}
}

// message is the body of every non-success response
type message struct {
	Message string `json:"message"`
}

// jsonResponse writes v as JSON with status
func (h *Handlers) jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, msg string, status int) {
	h.jsonResponse(w, status, message{Message: msg})
}

// respond writes the result of a catalog call, mapping reader errors to statuses
func respond[T any](h *Handlers, w http.ResponseWriter, r *http.Request, v T, err error) {
	switch {
	case err == nil:
		h.jsonResponse(w, http.StatusOK, v)
	case errors.Is(err, universidad.ErrNotFound):
		h.jsonError(w, msgNotFound, http.StatusNotFound)
	default:
		// the cause was logged by the reader; it is not shown to clients
		log.Debug().Str("path", r.URL.Path).Str("error", err.Error()).Msg("Responding with query failure")
		h.jsonError(w, msgQueryFailure, http.StatusInternalServerError)
	}
}
