package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/neexbeast/tourist-routes/internal/route"
)

// maxDescriptionLen caps the stop description shown in the table.
const maxDescriptionLen = 100

// Renderer builds the itinerary document for a route. The document is
// assembled fully in memory; nothing is written to disk.
type Renderer struct{}

// Render produces the PDF bytes for rt: a centered title, the
// formatted start date, a stop table when stops exist, and a footer.
func (Renderer) Render(rt *route.Route) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 24)
	doc.CellFormat(0, 12, tr("Rota: "+rt.Nome), "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(32, 6, tr("Data de Início:"), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr(rt.DataInicio.Format("02/01/2006 às 15:04")), "", 1, "L", false, 0, "")
	doc.Ln(6)

	if len(rt.Pontos) > 0 {
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 8, tr("Pontos Turísticos:"), "", 1, "L", false, 0, "")
		doc.Ln(3)

		writeStopTable(doc, tr, rt.Pontos)
	}

	doc.Ln(14)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(0, 6, tr("Gerado pela Plataforma de Turismo Inteligente"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf for route %d: %w", rt.ID, err)
	}
	return buf.Bytes(), nil
}

func writeStopTable(doc *fpdf.Fpdf, tr func(string) string, pontos []route.Point) {
	widths := []float64{13, 52, 115}

	doc.SetFillColor(128, 128, 128)
	doc.SetTextColor(245, 245, 245)
	doc.SetFont("Helvetica", "B", 12)
	for i, h := range []string{"#", "Nome", "Descrição"} {
		doc.CellFormat(widths[i], 9, tr(h), "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFillColor(245, 245, 220)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	for i, p := range pontos {
		nome := p.Nome()
		if nome == "" {
			nome = "N/A"
		}
		descricao := p.Descricao()
		if descricao == "" {
			descricao = "N/A"
		}
		descricao = truncate(descricao, maxDescriptionLen)

		doc.CellFormat(widths[0], 8, fmt.Sprintf("%d", i+1), "1", 0, "L", true, 0, "")
		doc.CellFormat(widths[1], 8, tr(nome), "1", 0, "L", true, 0, "")
		doc.CellFormat(widths[2], 8, tr(descricao), "1", 0, "L", true, 0, "")
		doc.Ln(-1)
	}
}

// truncate caps s at max characters, ellipsis-terminated.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// Filename returns the suggested download name for a route's export:
// spaces replaced by underscores, .pdf appended.
func Filename(nome string) string {
	return "rota_" + strings.ReplaceAll(nome, " ", "_") + ".pdf"
}
