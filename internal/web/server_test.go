package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimx/universidades/internal/database"
	"github.com/unimx/universidades/internal/universidad"
	"github.com/unimx/universidades/internal/web/middleware"
)

func newSeededServer(t *testing.T, opts Options) *Server {
	t.Helper()

	db, err := database.New(database.DriverSQLite, filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))
	_, err = db.Seed(ctx)
	require.NoError(t, err)

	return NewServer(universidad.NewReader(db), db, opts)
}

func serve(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerEndToEnd(t *testing.T) {
	s := newSeededServer(t, Options{})

	rec := serve(s, "/api/universidades")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []universidad.Resumen
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "Universidad de Guadalajara", all[0].Nombre)
	assert.Equal(t, 2, all[0].Licenciatura)

	rec = serve(s, "/api/universidades/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var det universidad.Detalle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &det))
	assert.Len(t, det.Carreras, 4)
	assert.Equal(t, []universidad.Recurso{
		{Titulo: "Rectoría", Recurso: "/img/udg/rectoria.jpg"},
		{Titulo: "Biblioteca", Recurso: "/img/udg/biblioteca.jpg"},
	}, det.Fotos)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", det.Videos[0].Recurso)

	// seeded without photos
	rec = serve(s, "/api/universidades/3/multimedia")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(s, "/api/universidades/1/ubicacion")
	require.Equal(t, http.StatusOK, rec.Code)
	var ub universidad.Ubicacion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ub))
	assert.Contains(t, ub.URLMaps, "https://www.google.com/maps/embed?pb=")

	rec = serve(s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerRejectsOutsideSubnet(t *testing.T) {
	allowed, err := middleware.ParseSubnet("10.0.0.0/8")
	require.NoError(t, err)
	s := newSeededServer(t, Options{AllowedNet: allowed})

	// httptest requests come from 192.0.2.1
	rec := serve(s, "/api/universidades")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServerUnknownRoute(t *testing.T) {
	s := newSeededServer(t, Options{})

	rec := serve(s, "/api/carreras")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Ruta no encontrada"}`, rec.Body.String())
}

func TestServerStartAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := newSeededServer(t, Options{Port: port, Bind: "127.0.0.1"})
	assert.Equal(t, net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), s.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.Addr() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
