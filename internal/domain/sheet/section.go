// Package sheet models the SDS document structure: 16 fixed sections of
// ordered, provenance-tagged fields.  The section catalog is process-wide
// immutable data; documents are immutable once assembled.
package sheet

import (
	"fmt"

	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// SectionCount is fixed by the SDS standard and never changes.
const SectionCount = 16

// sectionTitles holds the canonical titles, index 0 = section 1.  The order
// and wording must be identical across JSON export, document export, and
// single-section retrieval.
var sectionTitles = [SectionCount]string{
	"Chemical Product and Company Identification",
	"Composition and Information on Ingredients",
	"Hazards Identification",
	"First Aid Measures",
	"Fire-Fighting Measures",
	"Accidental Release Measures",
	"Handling and Storage",
	"Exposure Controls/Personal Protection",
	"Physical and Chemical Properties",
	"Stability and Reactivity",
	"Toxicological Information",
	"Ecological Information",
	"Disposal Considerations",
	"Transport Information",
	"Regulatory Information",
	"Other Information",
}

// Catalog returns the fixed section catalog in numeric order.
func Catalog() []sdstypes.CatalogEntry {
	entries := make([]sdstypes.CatalogEntry, SectionCount)
	for i, title := range sectionTitles {
		entries[i] = sdstypes.CatalogEntry{Number: i + 1, Title: title}
	}
	return entries
}

// TitleFor returns the canonical title of section n.
func TitleFor(n int) (string, error) {
	if n < 1 || n > SectionCount {
		return "", errors.New(errors.ErrCodeInputInvalidSection,
			fmt.Sprintf("section number must be between 1 and %d", SectionCount)).
			WithDetail(fmt.Sprintf("got %d", n))
	}
	return sectionTitles[n-1], nil
}

// Field is one ordered key/value entry of a section.
type Field struct {
	Key   string
	Value sdstypes.TaggedValue
}

// Section is one of the 16 document sections.  Fields keep insertion order;
// a section is complete only when every field carries a real value.
type Section struct {
	Number      int
	Title       string
	fields      []Field
	DataSources []string
	Notes       []string
}

// NewSection creates an empty section for the given number.
func NewSection(n int) (*Section, error) {
	title, err := TitleFor(n)
	if err != nil {
		return nil, err
	}
	return &Section{Number: n, Title: title}, nil
}

// Add appends a tagged field, keeping declaration order.
func (s *Section) Add(key string, v sdstypes.TaggedValue) {
	s.fields = append(s.fields, Field{Key: key, Value: v})
}

// AddText appends a plain string value with the given provenance.  Empty
// strings degrade to the unavailable placeholder so no field is ever blank.
func (s *Section) AddText(key, value string, source sdstypes.Provenance) {
	if value == "" {
		s.Add(key, sdstypes.Unavailable())
		return
	}
	s.Add(key, sdstypes.TaggedValue{Value: value, Source: source, Confidence: confidenceFor(source)})
}

// AddDefault appends a fixed guidance value from the defaulting policy.
func (s *Section) AddDefault(key, value string) {
	s.AddText(key, value, sdstypes.SourceDefault)
}

func confidenceFor(source sdstypes.Provenance) float64 {
	switch source {
	case sdstypes.SourceComputed:
		return 1
	case sdstypes.SourceFetched:
		return 0.8
	default:
		return 0
	}
}

// Fields returns the section's fields in declaration order.
func (s *Section) Fields() []Field {
	return s.fields
}

// Complete reports whether every field carries a real (non-default) value.
func (s *Section) Complete() bool {
	if len(s.fields) == 0 {
		return false
	}
	for _, f := range s.fields {
		if !f.Value.IsAvailable() {
			return false
		}
	}
	return true
}

// View converts the section to its wire representation.
func (s *Section) View() sdstypes.SectionView {
	fields := make([]sdstypes.FieldView, len(s.fields))
	for i, f := range s.fields {
		fields[i] = sdstypes.FieldView{
			Key:    f.Key,
			Value:  f.Value.Value,
			Unit:   f.Value.Unit,
			Source: f.Value.Source,
		}
	}
	return sdstypes.SectionView{
		Number:      s.Number,
		Title:       s.Title,
		Fields:      fields,
		Complete:    s.Complete(),
		DataSources: s.DataSources,
		Notes:       s.Notes,
	}
}

//Personal.AI order the ending
