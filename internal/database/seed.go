package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/unimx/universidades/internal/mapsembed"
)

// Educational level names as they are stored in nivel_educativo
const (
	NivelLicenciatura = "LICENCIATURA"
	NivelMaestria     = "MAESTR&IACUTE;A"
	NivelDoctorado    = "DOCTORADO"
)

type seedTable struct {
	table   string
	columns []string
	rows    [][]any
}

// demoCatalog is a small catalog used by the seed command
var demoCatalog = []seedTable{
	{"nivel_educativo", []string{"id", "nombre"}, [][]any{
		{1, NivelLicenciatura},
		{2, NivelMaestria},
		{3, NivelDoctorado},
	}},
	{"area", []string{"id", "nombre"}, [][]any{
		{1, "Ingenierías y Tecnología"},
		{2, "Ciencias de la Salud"},
		{3, "Ciencias Sociales y Humanidades"},
	}},
	{"estado", []string{"id", "nombre"}, [][]any{
		{14, "Jalisco"},
	}},
	{"municipio", []string{"id", "estado_id", "nombre"}, [][]any{
		{39, 14, "Guadalajara"},
		{120, 14, "Zapopan"},
		{98, 14, "San Pedro Tlaquepaque"},
	}},
	{"universidad", []string{"id", "nombre", "ruta_escudo", "tipo"}, [][]any{
		{1, "Universidad de Guadalajara", "/img/escudos/udg.png", 0},
		{2, "ITESO", "/img/escudos/iteso.png", 1},
		{3, "Universidad Panamericana", "/img/escudos/up.png", 1},
	}},
	{"carrera", []string{"id", "universidad_id", "nivel_educativo_id", "nombre", "recurso"}, [][]any{
		{1, 1, 1, "Ingeniería en Computación", "https://www.udg.mx/oferta/ingenieria-computacion.pdf"},
		{2, 1, 1, "Medicina", "https://www.udg.mx/oferta/medicina.pdf"},
		{3, 1, 2, "Maestría en Ciencias de Datos", "https://www.udg.mx/oferta/maestria-datos.pdf"},
		{4, 1, 3, "Doctorado en Ciencias Sociales", "https://www.udg.mx/oferta/doctorado-sociales.pdf"},
		{5, 2, 1, "Ingeniería en Sistemas Computacionales", "https://www.iteso.mx/oferta/isc"},
		{6, 2, 1, "Psicología", "https://www.iteso.mx/oferta/psicologia"},
		{7, 2, 2, "Maestría en Ciencias de Datos", "https://www.iteso.mx/oferta/mcd"},
		{8, 3, 1, "Derecho", "https://www.up.edu.mx/oferta/derecho"},
		{9, 3, 1, "Medicina", "https://www.up.edu.mx/oferta/medicina"},
	}},
	{"carrera_area", []string{"carrera_id", "area_id"}, [][]any{
		{1, 1}, {2, 2}, {3, 1}, {4, 3}, {5, 1}, {6, 3}, {7, 1}, {8, 3}, {9, 2},
	}},
	{"beca", []string{"id", "universidad_id", "titulo"}, [][]any{
		{1, 2, "Beca de Excelencia Académica"},
		{2, 3, "Beca Deportiva"},
	}},
	{"foto", []string{"id", "universidad_id", "titulo", "recurso"}, [][]any{
		{1, 1, "Rectoría", "/img/udg/rectoria.jpg"},
		{2, 1, "Biblioteca", "/img/udg/biblioteca.jpg"},
		{3, 2, "Campus", "/img/iteso/campus.jpg"},
	}},
	{"video", []string{"id", "universidad_id", "titulo", "recurso"}, [][]any{
		{1, 1, "Conoce la UdeG", "dQw4w9WgXcQ"},
		{2, 2, "Recorrido virtual", "oHg5SJYRHA0"},
		{3, 3, "Vida universitaria", "9bZkp7q19f0"},
	}},
	{"ubicacion", []string{"universidad_id", "num_interior", "num_exterior", "calle", "colonia", "ciudad", "municipio_id", "codigo_postal", "url_maps"}, [][]any{
		{1, "", "976", "Av. Juárez", "Centro", "Guadalajara", 39, "44100",
			mapsembed.Render("https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3732.9!2d-103.3553!3d20.6748!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1")},
		{2, "", "8585", "Periférico Sur Manuel Gómez Morín", "ITESO", "San Pedro Tlaquepaque", 98, "45604",
			mapsembed.Render("https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3734.7!2d-103.4179!3d20.6078!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1")},
	}},
}

// Seed inserts the demo catalog into an empty database. It is a no-op when
// universities already exist.
func (db *DB) Seed(ctx context.Context) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM universidad").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count universities: %w", err)
	}
	if count > 0 {
		log.Info().Int("universidades", count).Msg("Catalog already populated, skipping seed")
		return false, nil
	}

	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, t := range demoCatalog {
			if err := db.insertRows(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Int("tables", len(demoCatalog)).Msg("Seeded demo catalog")
	return true, nil
}

func (db *DB) insertRows(ctx context.Context, tx *sql.Tx, t seedTable) error {
	placeholders := strings.TrimRight(strings.Repeat("?,", len(t.columns)), ",")
	stmt := db.dialect.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.table, strings.Join(t.columns, ", "), placeholders,
	))

	for _, row := range t.rows {
		if _, err := tx.ExecContext(ctx, stmt, row...); err != nil {
			return fmt.Errorf("failed to seed %s: %w", t.table, err)
		}
	}
	return nil
}
