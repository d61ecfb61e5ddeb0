package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/unimx/universidades/internal/universidad"
)

// ParamError reports an invalid path parameter
type ParamError struct {
	Param string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Param, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// idParam reads a positive integer id from the route
func (h *Handlers) idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if err := h.validate.Var(raw, "required,number,max=18"); err != nil {
		return 0, &ParamError{Param: name, Err: describe(err)}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParamError{Param: name, Err: err}
	}
	if err := h.validate.Var(id, "gt=0"); err != nil {
		return 0, &ParamError{Param: name, Err: describe(err)}
	}
	return id, nil
}

// tipoParam reads the institution type, 0 (publica) or 1 (privada)
func (h *Handlers) tipoParam(r *http.Request) (universidad.Tipo, error) {
	raw := chi.URLParam(r, "tipo")
	if err := h.validate.Var(raw, "required,oneof=0 1"); err != nil {
		return 0, &ParamError{Param: "tipo", Err: describe(err)}
	}
	return universidad.ParseTipo(raw)
}

func describe(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Errorf("failed %s", fe.Tag())
	}
	return err
}
