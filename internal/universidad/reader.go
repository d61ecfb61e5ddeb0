// Package universidad reads university records (programs, media, location and
// scholarships) and reshapes aggregated rows into response structures.
package universidad

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/unimx/universidades/internal/database"
	"github.com/unimx/universidades/internal/mapsembed"
)

// Store is the query capability the reader needs. *database.DB satisfies it.
type Store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Dialect() database.Dialect
}

// Reader answers read-only questions about the university catalog.
// Every method returns either a value or an error wrapping ErrNotFound or
// ErrQueryFailure.
type Reader struct {
	store Store
}

// NewReader creates a reader over store
func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

// ListAll returns every university that offers at least one program. An empty
// catalog is an empty list, not an error.
func (r *Reader) ListAll(ctx context.Context) ([]Resumen, error) {
	return r.listResumen(ctx, "list_all", nil)
}

// ListByType returns the universities of one type
func (r *Reader) ListByType(ctx context.Context, tipo Tipo) ([]Resumen, error) {
	out, err := r.listResumen(ctx, "list_by_type", &tipo)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("list_by_type", int64(tipo))
	}
	return out, nil
}

func (r *Reader) listResumen(ctx context.Context, op string, tipo *Tipo) ([]Resumen, error) {
	var key int64 = -1
	if tipo != nil {
		key = int64(*tipo)
	}

	rows, err := r.query(ctx, resumenQuery(r.store.Dialect(), tipo))
	if err != nil {
		return nil, queryFailed(ctx, op, key, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (Resumen, error) {
		var (
			res      Resumen
			t        int
			carreras sql.NullString
		)
		if err := rows.Scan(
			&res.UniversidadID, &res.Nombre, &res.RutaEscudo, &t,
			&res.Licenciatura, &res.Maestria, &res.Doctorado, &res.Beca,
			&carreras,
		); err != nil {
			return res, err
		}
		res.Tipo = Tipo(t).Label()
		res.Carreras = dedupe(splitAggregate(carreras))
		res.TotalCarreras = len(res.Carreras)
		return res, nil
	})
	if err != nil {
		return nil, queryFailed(ctx, op, key, err)
	}

	log.Debug().Str("op", op).Int("universidades", len(out)).Msg("Listed universities")
	return out, nil
}

// GetByID returns the detail of one university. A university without at least
// one program, one photo and one video is reported as not found.
func (r *Reader) GetByID(ctx context.Context, id int64) (*Detalle, error) {
	const op = "get_by_id"

	rows, err := r.query(ctx, detalleQuery(r.store.Dialect(), id))
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (*Detalle, error) {
		var (
			det                        Detalle
			t                          int
			carreras, recursosCarreras sql.NullString
			fotos, recursosFotos       sql.NullString
			videos, recursosVideos     sql.NullString
		)
		if err := rows.Scan(
			&det.UniversidadID, &det.Nombre, &det.RutaEscudo, &t,
			&carreras, &recursosCarreras,
			&fotos, &recursosFotos,
			&videos, &recursosVideos,
		); err != nil {
			return nil, err
		}
		det.Tipo = Tipo(t).Label()

		pairs, err := zipAggregates(carreras, recursosCarreras)
		if err != nil {
			return nil, fmt.Errorf("carreras: %w", err)
		}
		det.Carreras = make([]CarreraRecurso, len(pairs))
		for i, p := range pairs {
			det.Carreras[i] = CarreraRecurso{Nombre: p[0], Recurso: p[1]}
		}

		if pairs, err = zipAggregates(fotos, recursosFotos); err != nil {
			return nil, fmt.Errorf("fotos: %w", err)
		}
		det.Fotos = make([]Recurso, len(pairs))
		for i, p := range pairs {
			det.Fotos[i] = Recurso{Titulo: p[0], Recurso: p[1]}
		}

		if pairs, err = zipAggregates(videos, recursosVideos); err != nil {
			return nil, fmt.Errorf("videos: %w", err)
		}
		det.Videos = make([]Recurso, len(pairs))
		for i, p := range pairs {
			det.Videos[i] = Recurso{Titulo: p[0], Recurso: videoURL(p[1])}
		}

		return &det, nil
	})
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, id)
	}
	return out[0], nil
}

// ListByArea returns the distinct (university, program) pairs tagged with areaID
func (r *Reader) ListByArea(ctx context.Context, areaID int64) ([]CarreraArea, error) {
	const op = "list_by_area"

	rows, err := r.query(ctx, areaQuery(areaID))
	if err != nil {
		return nil, queryFailed(ctx, op, areaID, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (CarreraArea, error) {
		var (
			ca CarreraArea
			t  int
		)
		err := rows.Scan(&ca.UniversidadID, &ca.Nombre, &ca.RutaEscudo, &t, &ca.Carrera)
		ca.Tipo = Tipo(t).Label()
		return ca, err
	})
	if err != nil {
		return nil, queryFailed(ctx, op, areaID, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, areaID)
	}
	return out, nil
}

// GetOferta returns the programs of a university as stored
func (r *Reader) GetOferta(ctx context.Context, id int64) ([]Carrera, error) {
	const op = "get_oferta"

	rows, err := r.query(ctx, ofertaQuery(id))
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (Carrera, error) {
		var c Carrera
		err := rows.Scan(&c.UniversidadID, &c.ID, &c.Nombre, &c.Recurso)
		return c, err
	})
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, id)
	}
	return out, nil
}

// GetMultimedia returns the photos and videos of a university. Both lists are
// fetched concurrently and both must be non-empty.
func (r *Reader) GetMultimedia(ctx context.Context, id int64) (*Multimedia, error) {
	var media Multimedia

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fotos, err := r.fetchFotos(gctx, id)
		media.Fotos = fotos
		return err
	})
	g.Go(func() error {
		videos, err := r.fetchVideos(gctx, id)
		media.Videos = videos
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *Reader) fetchFotos(ctx context.Context, id int64) ([]Foto, error) {
	const op = "get_fotos"

	rows, err := r.query(ctx, fotosQuery(id))
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (Foto, error) {
		var f Foto
		err := rows.Scan(&f.UniversidadID, &f.Titulo, &f.Recurso)
		return f, err
	})
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, id)
	}
	return out, nil
}

func (r *Reader) fetchVideos(ctx context.Context, id int64) ([]Video, error) {
	const op = "get_videos"

	rows, err := r.query(ctx, videosQuery(id))
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (Video, error) {
		var v Video
		if err := rows.Scan(&v.UniversidadID, &v.ID, &v.Titulo, &v.Recurso); err != nil {
			return v, err
		}
		v.Recurso = videoURL(v.Recurso)
		return v, nil
	})
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, id)
	}
	return out, nil
}

// GetDireccion returns the postal address of a university as one line
func (r *Reader) GetDireccion(ctx context.Context, id int64) (*Direccion, error) {
	const op = "get_direccion"

	rows, err := r.query(ctx, direccionQuery(id))
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (*Direccion, error) {
		var (
			dir                                     Direccion
			interior, exterior, calle, colonia      sql.NullString
			estado, municipio, ciudad, codigoPostal sql.NullString
		)
		if err := rows.Scan(
			&dir.UniversidadID,
			&interior, &exterior, &calle, &colonia,
			&estado, &municipio, &ciudad, &codigoPostal,
		); err != nil {
			return nil, err
		}
		dir.Direccion = joinAddress(interior, exterior, calle, colonia, estado, municipio, ciudad, codigoPostal)
		return &dir, nil
	})
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, id)
	}
	return out[0], nil
}

// GetUbicacion returns the maps embed URL of a university
func (r *Reader) GetUbicacion(ctx context.Context, id int64) (*Ubicacion, error) {
	const op = "get_ubicacion"

	rows, err := r.query(ctx, ubicacionQuery(id))
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}

	out, err := collect(rows, func(rows *sql.Rows) (*Ubicacion, error) {
		var (
			ub     Ubicacion
			stored sql.NullString
		)
		if err := rows.Scan(&ub.UniversidadID, &stored); err != nil {
			return nil, err
		}
		if !stored.Valid {
			return nil, mapsembed.ErrNoEmbedURL
		}
		src, err := mapsembed.Extract(stored.String)
		if err != nil {
			return nil, err
		}
		ub.URLMaps = src
		return &ub, nil
	})
	if err != nil {
		return nil, queryFailed(ctx, op, id, err)
	}
	if len(out) == 0 {
		return nil, notFound(op, id)
	}
	return out[0], nil
}

func (r *Reader) query(ctx context.Context, qb *database.QueryBuilder) (*sql.Rows, error) {
	query, args := qb.Build(r.store.Dialect())
	return r.store.QueryContext(ctx, query, args...)
}

// collect scans every row with scan and closes rows
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// IsNotFound reports whether err means the requested records do not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
