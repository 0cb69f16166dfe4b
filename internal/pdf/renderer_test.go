package pdf_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourist-routes/internal/pdf"
	"github.com/neexbeast/tourist-routes/internal/route"
)

func sampleRoute() *route.Route {
	return &route.Route{
		ID:         1,
		Nome:       "Rota Rio de Janeiro",
		DataInicio: time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC),
		Pontos: []route.Point{
			{"id": float64(1), "nome": "Cristo Redentor", "descricao": "Estátua art déco no topo do Corcovado"},
			{"id": float64(2), "nome": "Pão de Açúcar"},
		},
		UserID: 1,
	}
}

func TestRender_ProducesPDFSignature(t *testing.T) {
	b, err := pdf.Renderer{}.Render(sampleRoute())
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"), "output must start with the PDF signature")
}

func TestRender_NoStops(t *testing.T) {
	rt := sampleRoute()
	rt.Pontos = nil

	b, err := pdf.Renderer{}.Render(rt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}

func TestRender_LongDescription(t *testing.T) {
	rt := sampleRoute()
	rt.Pontos = []route.Point{
		{"id": float64(1), "nome": "Ponto", "descricao": strings.Repeat("descrição muito longa ", 30)},
	}

	b, err := pdf.Renderer{}.Render(rt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "rota_Rota_Rio_de_Janeiro.pdf", pdf.Filename("Rota Rio de Janeiro"))
	assert.Equal(t, "rota_Simples.pdf", pdf.Filename("Simples"))
}
