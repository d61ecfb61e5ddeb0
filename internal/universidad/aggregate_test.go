package universidad

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func TestSplitAggregate(t *testing.T) {
	tests := []struct {
		name string
		col  sql.NullString
		want []string
	}{
		{"null", sql.NullString{}, nil},
		{"single empty value", valid(""), []string{""}},
		{"values with commas", valid("Ciencias, Artes␟Derecho"), []string{"Ciencias, Artes", "Derecho"}},
		{"empty middle value", valid("a␟␟c"), []string{"a", "", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitAggregate(tt.col))
		})
	}
}

func TestZipAggregates(t *testing.T) {
	pairs, err := zipAggregates(valid("Entrada␟Biblioteca"), valid("/a.jpg␟"))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"Entrada", "/a.jpg"}, {"Biblioteca", ""}}, pairs)

	_, err = zipAggregates(valid("Entrada␟Biblioteca"), valid("/a.jpg"))
	assert.Error(t, err)

	pairs, err = zipAggregates(sql.NullString{}, sql.NullString{})
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"Derecho", "Medicina", "Artes"}, dedupe([]string{"Derecho", "Medicina", "Derecho", "Artes", "Medicina"}))
	assert.Empty(t, dedupe(nil))
}

func TestVideoURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", videoURL("dQw4w9WgXcQ"))
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", videoURL("https://youtu.be/dQw4w9WgXcQ"))
}

func TestJoinAddress(t *testing.T) {
	got := joinAddress(sql.NullString{}, valid("4"), valid(" Main St "), valid(""), valid("Jalisco"))
	assert.Equal(t, "4 Main St Jalisco", got)
}

func TestParseTipo(t *testing.T) {
	for in, want := range map[string]Tipo{"0": TipoPublica, "1": TipoPrivada, "Privada": TipoPrivada, "publica": TipoPublica} {
		got, err := ParseTipo(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTipo("2")
	assert.Error(t, err)
	assert.Equal(t, "Publica", TipoPublica.Label())
	assert.Equal(t, "Privada", TipoPrivada.Label())
}
