package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

const (
	pageWidth    = 595.0 // A4 portrait, points
	pageHeight   = 842.0
	pageMargin   = 50.0
	lineHeight   = 14.0
	maxLineChars = 96
)

// PDFRenderer lays the document out as paginated text and hands the
// declarative page description to pdfcpu.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

type pdfLine struct {
	text string
	font string
	size int
}

type pdfSpec struct {
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfText struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"position"`
	Font     pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func (r *PDFRenderer) Render(doc *sheet.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "document required")
	}

	spec, err := json.Marshal(buildSpec(doc.View()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to build page description")
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDocumentRenderFailed, "pdf rendering failed")
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) FileExtension() string { return "pdf" }

func buildSpec(view sdstypes.DocumentView) pdfSpec {
	lines := layoutLines(view)

	linesPerPage := int((pageHeight - 2*pageMargin) / lineHeight)
	pages := make(map[string]pdfPage)
	pageNr := 0
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pageNr++

		var texts []pdfText
		y := pageMargin
		for _, line := range lines[start:end] {
			if line.text != "" {
				texts = append(texts, pdfText{
					Value:    line.text,
					Position: [2]float64{pageMargin, y},
					Font:     pdfFont{Name: line.font, Size: line.size},
				})
			}
			y += lineHeight
		}
		pages[fmt.Sprintf("%d", pageNr)] = pdfPage{Content: pdfContent{Text: texts}}
	}

	return pdfSpec{Origin: "upperLeft", Pages: pages}
}

func layoutLines(view sdstypes.DocumentView) []pdfLine {
	heading := func(text string) pdfLine { return pdfLine{text: text, font: "Helvetica-Bold", size: 12} }
	body := func(text string) pdfLine { return pdfLine{text: text, font: "Helvetica", size: 10} }

	lines := []pdfLine{
		{text: "SAFETY DATA SHEET", font: "Helvetica-Bold", size: 16},
		body(fmt.Sprintf("%s (%s)", view.Identity.Name, view.Identity.Formula)),
		body("Canonical SMILES: " + view.Identity.CanonicalSMILES),
		body("Structure Key: " + view.Identity.StructureKey),
		{},
	}

	for _, section := range view.Sections {
		lines = append(lines,
			heading(fmt.Sprintf("SECTION %d: %s", section.Number, section.Title)))
		for _, field := range section.Fields {
			value := field.Value
			if field.Unit != "" {
				value += " " + field.Unit
			}
			lines = append(lines, body(truncate(fmt.Sprintf("%s: %s  [%s]",
				field.Key, value, field.Source), maxLineChars)))
		}
		lines = append(lines, pdfLine{})
	}

	lines = append(lines,
		body(fmt.Sprintf("Generated %s. Predicted values require experimental verification before use.",
			time.Time(view.GeneratedAt).Format("2006-01-02"))))
	return lines
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

//Personal.AI order the ending
