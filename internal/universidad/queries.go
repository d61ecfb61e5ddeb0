package universidad

import (
	"github.com/unimx/universidades/internal/database"
)

// Statements are written with ? placeholders and rebound per dialect at
// execution time. Every pair of parallel aggregates uses the same ORDER BY key.

func resumenQuery(d database.Dialect, tipo *Tipo) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT
			u.id,
			u.nombre,
			u.ruta_escudo,
			u.tipo,
			COUNT(DISTINCT CASE WHEN n.nombre = ? THEN c.nombre END),
			COUNT(DISTINCT CASE WHEN n.nombre = ? THEN c.nombre END),
			COUNT(DISTINCT CASE WHEN n.nombre = ? THEN c.nombre END),
			CASE WHEN EXISTS (SELECT 1 FROM beca b WHERE b.universidad_id = u.id) THEN 1 ELSE 0 END,
			`+d.OrderedConcat("c.nombre", "c.id", AggregateSeparator)+`
		FROM universidad u
		INNER JOIN carrera c ON c.universidad_id = u.id
		INNER JOIN nivel_educativo n ON n.id = c.nivel_educativo_id`,
		database.NivelLicenciatura, database.NivelMaestria, database.NivelDoctorado,
	)
	if tipo != nil {
		qb.Add(`WHERE u.tipo = ?`, int(*tipo))
	}
	qb.Add(`
		GROUP BY u.id, u.nombre, u.ruta_escudo, u.tipo
		ORDER BY u.id`)
	return &qb
}

// detalleQuery returns one row only when the university has at least one
// program with a level, one photo and one video.
func detalleQuery(d database.Dialect, id int64) *database.QueryBuilder {
	carreras := `
		FROM carrera c
		INNER JOIN nivel_educativo n ON n.id = c.nivel_educativo_id
		WHERE c.universidad_id = u.id`

	var qb database.QueryBuilder
	qb.Add(`
		SELECT
			u.id,
			u.nombre,
			u.ruta_escudo,
			u.tipo,
			(SELECT ` + d.OrderedConcat("c.nombre", "c.id", AggregateSeparator) + carreras + `),
			(SELECT ` + d.OrderedConcat("COALESCE(c.recurso, '')", "c.id", AggregateSeparator) + carreras + `),
			(SELECT ` + d.OrderedConcat("f.titulo", "f.id", AggregateSeparator) + ` FROM foto f WHERE f.universidad_id = u.id),
			(SELECT ` + d.OrderedConcat("COALESCE(f.recurso, '')", "f.id", AggregateSeparator) + ` FROM foto f WHERE f.universidad_id = u.id),
			(SELECT ` + d.OrderedConcat("v.titulo", "v.id", AggregateSeparator) + ` FROM video v WHERE v.universidad_id = u.id),
			(SELECT ` + d.OrderedConcat("COALESCE(v.recurso, '')", "v.id", AggregateSeparator) + ` FROM video v WHERE v.universidad_id = u.id)
		FROM universidad u`)
	qb.Add(`WHERE u.id = ?`, id)
	qb.Add(`
		AND EXISTS (SELECT 1` + carreras + `)
		AND EXISTS (SELECT 1 FROM foto f WHERE f.universidad_id = u.id)
		AND EXISTS (SELECT 1 FROM video v WHERE v.universidad_id = u.id)`)
	return &qb
}

func areaQuery(areaID int64) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT DISTINCT u.id, u.nombre, u.ruta_escudo, u.tipo, c.nombre
		FROM carrera c
		INNER JOIN carrera_area ca ON ca.carrera_id = c.id
		INNER JOIN universidad u ON u.id = c.universidad_id
		WHERE ca.area_id = ?
		ORDER BY u.id, c.nombre`, areaID)
	return &qb
}

func ofertaQuery(id int64) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT c.universidad_id, c.id, c.nombre, COALESCE(c.recurso, '')
		FROM carrera c
		WHERE c.universidad_id = ?
		ORDER BY c.id`, id)
	return &qb
}

func fotosQuery(id int64) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT f.universidad_id, f.titulo, COALESCE(f.recurso, '')
		FROM foto f
		WHERE f.universidad_id = ?
		ORDER BY f.id`, id)
	return &qb
}

func videosQuery(id int64) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT v.universidad_id, v.id, v.titulo, COALESCE(v.recurso, '')
		FROM video v
		WHERE v.universidad_id = ?
		ORDER BY v.id`, id)
	return &qb
}

func direccionQuery(id int64) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT
			ub.universidad_id,
			ub.num_interior,
			ub.num_exterior,
			ub.calle,
			ub.colonia,
			e.nombre,
			m.nombre,
			ub.ciudad,
			ub.codigo_postal
		FROM ubicacion ub
		INNER JOIN municipio m ON m.id = ub.municipio_id
		INNER JOIN estado e ON e.id = m.estado_id
		WHERE ub.universidad_id = ?`, id)
	return &qb
}

func ubicacionQuery(id int64) *database.QueryBuilder {
	var qb database.QueryBuilder
	qb.Add(`
		SELECT ub.universidad_id, ub.url_maps
		FROM ubicacion ub
		WHERE ub.universidad_id = ?`, id)
	return &qb
}
