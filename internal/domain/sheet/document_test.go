package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	apperrors "github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

func testSections(t *testing.T) []*Section {
	t.Helper()
	sections := make([]*Section, SectionCount)
	for i := range sections {
		s, err := NewSection(i + 1)
		require.NoError(t, err)
		s.AddText("Placeholder", "value", sdstypes.SourceComputed)
		sections[i] = s
	}
	return sections
}

func testIdentity(t *testing.T) *identity.MoleculeIdentity {
	t.Helper()
	id, err := identity.NewResolver(nil).Resolve("CCO")
	require.NoError(t, err)
	return id
}

func TestCatalog(t *testing.T) {
	entries := Catalog()
	require.Len(t, entries, SectionCount)
	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, "Chemical Product and Company Identification", entries[0].Title)
	assert.Equal(t, 9, entries[8].Number)
	assert.Equal(t, "Physical and Chemical Properties", entries[8].Title)
	assert.Equal(t, 16, entries[15].Number)
	assert.Equal(t, "Other Information", entries[15].Title)
}

func TestTitleFor(t *testing.T) {
	title, err := TitleFor(10)
	require.NoError(t, err)
	assert.Equal(t, "Stability and Reactivity", title)

	for _, n := range []int{0, -1, 17} {
		_, err := TitleFor(n)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInputInvalidSection))
	}
}

func TestSection_Completeness(t *testing.T) {
	s, err := NewSection(9)
	require.NoError(t, err)

	assert.False(t, s.Complete(), "empty section is incomplete")

	s.AddText("Molecular Weight", "46.07", sdstypes.SourceComputed)
	assert.True(t, s.Complete())

	s.Add("Boiling Point", sdstypes.Unavailable())
	assert.False(t, s.Complete(), "unavailable field breaks completeness")
}

func TestSection_AddTextEmptyDegrades(t *testing.T) {
	s, err := NewSection(1)
	require.NoError(t, err)
	s.AddText("CAS Number", "", sdstypes.SourceFetched)

	fields := s.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, sdstypes.NotAvailable, fields[0].Value.Value)
	assert.Equal(t, sdstypes.SourceUnavailable, fields[0].Value.Source)
}

func TestSection_View(t *testing.T) {
	s, err := NewSection(3)
	require.NoError(t, err)
	s.AddText("Signal Word", "Warning", sdstypes.SourceComputed)
	s.AddDefault("Routes of Exposure", "Inhalation, Dermal contact, Eye contact, Ingestion")
	s.DataSources = []string{"Structure-based classification"}

	v := s.View()
	assert.Equal(t, 3, v.Number)
	assert.Equal(t, "Hazards Identification", v.Title)
	require.Len(t, v.Fields, 2)
	assert.Equal(t, sdstypes.SourceComputed, v.Fields[0].Source)
	assert.Equal(t, sdstypes.SourceDefault, v.Fields[1].Source)
	assert.False(t, v.Complete, "defaulted field keeps the section incomplete")
}

func TestNewDocument_Invariants(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc, err := NewDocument(testIdentity(t), testSections(t))
		require.NoError(t, err)
		assert.NotEmpty(t, doc.ID)
		assert.True(t, doc.Complete())
		assert.Len(t, doc.Sections(), SectionCount)
	})

	t.Run("nil identity is a precondition failure", func(t *testing.T) {
		_, err := NewDocument(nil, testSections(t))
		require.Error(t, err)
		assert.True(t, apperrors.IsPrecondition(err))
	})

	t.Run("wrong section count", func(t *testing.T) {
		_, err := NewDocument(testIdentity(t), testSections(t)[:15])
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentAssemblyFailed))
	})

	t.Run("out of order sections", func(t *testing.T) {
		sections := testSections(t)
		sections[0], sections[1] = sections[1], sections[0]
		_, err := NewDocument(testIdentity(t), sections)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentAssemblyFailed))
	})
}

func TestDocument_SectionAccess(t *testing.T) {
	doc, err := NewDocument(testIdentity(t), testSections(t))
	require.NoError(t, err)

	s, err := doc.Section(9)
	require.NoError(t, err)
	assert.Equal(t, 9, s.Number)

	_, err = doc.Section(17)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInputInvalidSection))
}

func TestDocument_View(t *testing.T) {
	doc, err := NewDocument(testIdentity(t), testSections(t))
	require.NoError(t, err)

	v := doc.View()
	require.Len(t, v.Sections, SectionCount)
	for i, s := range v.Sections {
		assert.Equal(t, i+1, s.Number)
	}
	assert.Equal(t, "C2H6O", v.Identity.Formula)
	assert.True(t, v.Complete)
}

//Personal.AI order the ending
