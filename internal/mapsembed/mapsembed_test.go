package mapsembed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSrc = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3732.9!2d-103.3553!3d20.6748!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1"

func TestExtractCanonicalMatchesOffsets(t *testing.T) {
	stored := Render(sampleSrc)

	got, err := Extract(stored)
	require.NoError(t, err)
	assert.Equal(t, sampleSrc, got)

	// the legacy contract: text between offset 13 and len-88
	assert.Equal(t, stored[13:len(stored)-88], got)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		want    string
		wantErr bool
	}{
		{
			name:   "iframe with extra attributes",
			stored: `<iframe width="400" src="` + sampleSrc + `" style="border:0;" referrerpolicy="no-referrer-when-downgrade"></iframe>`,
			want:   sampleSrc,
		},
		{
			name:   "surrounding whitespace",
			stored: "\n  " + Render(sampleSrc) + "  \n",
			want:   sampleSrc,
		},
		{
			name:   "bare url",
			stored: sampleSrc,
			want:   sampleSrc,
		},
		{
			name:    "iframe without src",
			stored:  `<iframe width="600"></iframe>`,
			wantErr: true,
		},
		{
			name:    "plain text",
			stored:  "Av. Juárez 976",
			wantErr: true,
		},
		{
			name:    "empty",
			stored:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.stored)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoEmbedURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
