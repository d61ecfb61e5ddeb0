package universidad

import (
	"fmt"
	"strings"
)

// Tipo distinguishes public from private institutions, stored as 0/1
type Tipo int

const (
	TipoPublica Tipo = 0
	TipoPrivada Tipo = 1
)

// Label returns the display label used in responses
func (t Tipo) Label() string {
	if t == TipoPublica {
		return "Publica"
	}
	return "Privada"
}

// ParseTipo accepts the stored values "0"/"1" and the labels
func ParseTipo(s string) (Tipo, error) {
	switch strings.ToLower(s) {
	case "0", "publica":
		return TipoPublica, nil
	case "1", "privada":
		return TipoPrivada, nil
	}
	return 0, fmt.Errorf("invalid tipo %q: must be 0 or 1", s)
}

// Resumen is the list view of a university
type Resumen struct {
	UniversidadID int64    `json:"Universidad_ID"`
	Nombre        string   `json:"Nombre"`
	RutaEscudo    string   `json:"Ruta_Escudo"`
	Tipo          string   `json:"Tipo"`
	Licenciatura  int      `json:"LICENCIATURA"`
	Maestria      int      `json:"MAESTRIA"`
	Doctorado     int      `json:"DOCTORADO"`
	Beca          int      `json:"BECA"`
	Carreras      []string `json:"Carreras"`
	TotalCarreras int      `json:"TotalCarreras"`
}

// Recurso pairs a media title with its link
type Recurso struct {
	Titulo  string `json:"Titulo"`
	Recurso string `json:"Recurso"`
}

// CarreraRecurso pairs a program name with its document link
type CarreraRecurso struct {
	Nombre  string `json:"Nombre"`
	Recurso string `json:"Recurso"`
}

// Detalle is the full view of one university
type Detalle struct {
	UniversidadID int64            `json:"Universidad_ID"`
	Nombre        string           `json:"Nombre"`
	RutaEscudo    string           `json:"Ruta_Escudo"`
	Tipo          string           `json:"Tipo"`
	Carreras      []CarreraRecurso `json:"Carreras"`
	Fotos         []Recurso        `json:"Fotos"`
	Videos        []Recurso        `json:"Videos"`
}

// CarreraArea is one (university, program) pair tagged with a subject area
type CarreraArea struct {
	UniversidadID int64  `json:"Universidad_ID"`
	Nombre        string `json:"Nombre"`
	RutaEscudo    string `json:"Ruta_Escudo"`
	Tipo          string `json:"Tipo"`
	Carrera       string `json:"carrera"`
}

// Carrera is a raw degree program row
type Carrera struct {
	UniversidadID int64  `json:"Universidad_ID"`
	ID            int64  `json:"ID"`
	Nombre        string `json:"Nombre"`
	Recurso       string `json:"Recurso"`
}

type Foto struct {
	UniversidadID int64  `json:"Universidad_ID"`
	Titulo        string `json:"Titulo"`
	Recurso       string `json:"Recurso"`
}

// Video carries the expanded watch URL in Recurso
type Video struct {
	UniversidadID int64  `json:"Universidad_ID"`
	ID            int64  `json:"ID"`
	Titulo        string `json:"Titulo"`
	Recurso       string `json:"Recurso"`
}

type Multimedia struct {
	Fotos  []Foto  `json:"linksFotos"`
	Videos []Video `json:"linksVideos"`
}

type Direccion struct {
	UniversidadID int64  `json:"Universidad_ID"`
	Direccion     string `json:"direccion"`
}

// Ubicacion carries the maps embed URL extracted from the stored snippet
type Ubicacion struct {
	UniversidadID int64  `json:"Universidad_ID"`
	URLMaps       string `json:"url_Maps"`
}
