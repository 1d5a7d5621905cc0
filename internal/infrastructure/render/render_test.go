package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

func testDocument(t *testing.T) *sheet.Document {
	t.Helper()

	resolver := identity.NewResolver(logging.NewNopLogger())
	id, err := resolver.Resolve("CCO")
	require.NoError(t, err)

	sections := make([]*sheet.Section, 0, sheet.SectionCount)
	for n := 1; n <= sheet.SectionCount; n++ {
		section, err := sheet.NewSection(n)
		require.NoError(t, err)
		section.AddText("Product Identifier", id.Name, sdstypes.SourceComputed)
		if n == 9 {
			section.Add("Molecular Weight", sdstypes.TaggedValue{
				Value:      "46.07",
				Unit:       "g/mol",
				Source:     sdstypes.SourceComputed,
				Confidence: 1,
			})
		}
		sections = append(sections, section)
	}

	doc, err := sheet.NewDocument(id, sections)
	require.NoError(t, err)
	return doc
}

func TestJSONRenderer(t *testing.T) {
	doc := testDocument(t)
	renderer := NewJSONRenderer()

	data, err := renderer.Render(doc)
	require.NoError(t, err)

	var view sdstypes.DocumentView
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Len(t, view.Sections, 16)
	assert.Equal(t, "C2H6O", view.Identity.Formula)

	assert.Equal(t, "application/json", renderer.ContentType())
	assert.Equal(t, "json", renderer.FileExtension())
}

func TestJSONRenderer_Deterministic(t *testing.T) {
	doc := testDocument(t)
	renderer := NewJSONRenderer()

	first, err := renderer.Render(doc)
	require.NoError(t, err)
	second, err := renderer.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJSONRenderer_NilDocument(t *testing.T) {
	_, err := NewJSONRenderer().Render(nil)
	require.Error(t, err)
}

func TestPDFRenderer(t *testing.T) {
	doc := testDocument(t)
	renderer := NewPDFRenderer()

	data, err := renderer.Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF-", string(data[:5]))

	assert.Equal(t, "application/pdf", renderer.ContentType())
	assert.Equal(t, "pdf", renderer.FileExtension())
}

func TestPDFRenderer_NilDocument(t *testing.T) {
	_, err := NewPDFRenderer().Render(nil)
	require.Error(t, err)
}

func TestBuildSpec_Paginates(t *testing.T) {
	doc := testDocument(t)
	spec := buildSpec(doc.View())

	assert.Equal(t, "upperLeft", spec.Origin)
	require.NotEmpty(t, spec.Pages)

	page, ok := spec.Pages["1"]
	require.True(t, ok)
	require.NotEmpty(t, page.Content.Text)
	assert.Equal(t, "SAFETY DATA SHEET", page.Content.Text[0].Value)
	assert.Equal(t, "Helvetica-Bold", page.Content.Text[0].Font.Name)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := truncate("abcdefghijklmnop", 10)
	assert.Len(t, long, 10)
	assert.Equal(t, "abcdefg...", long)
}

//Personal.AI order the ending
