package sheet

import (
	"fmt"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/pkg/errors"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// Document is the immutable assembled SDS: exactly 16 sections in numeric
// order plus the resolved identity and generation timestamp.
type Document struct {
	ID          common.ID
	Identity    *identity.MoleculeIdentity
	GeneratedAt common.Timestamp

	sections [SectionCount]*Section
}

// NewDocument validates and seals an assembled section set.  A nil identity
// is a hard precondition failure; a section set that is not exactly sections
// 1-16 in order is an assembly defect.
func NewDocument(id *identity.MoleculeIdentity, sections []*Section) (*Document, error) {
	if id == nil {
		return nil, errors.New(errors.ErrCodeDocumentPrecondition, "document assembly requires a resolved molecule identity")
	}
	if len(sections) != SectionCount {
		return nil, errors.New(errors.ErrCodeDocumentAssemblyFailed,
			fmt.Sprintf("expected %d sections, got %d", SectionCount, len(sections)))
	}

	doc := &Document{
		ID:          common.NewID(),
		Identity:    id,
		GeneratedAt: common.NewTimestamp(),
	}
	for i, s := range sections {
		if s == nil || s.Number != i+1 {
			return nil, errors.New(errors.ErrCodeDocumentAssemblyFailed,
				fmt.Sprintf("section %d missing or out of order", i+1))
		}
		doc.sections[i] = s
	}
	return doc, nil
}

// Section returns section n.
func (d *Document) Section(n int) (*Section, error) {
	if n < 1 || n > SectionCount {
		return nil, errors.New(errors.ErrCodeInputInvalidSection,
			fmt.Sprintf("section number must be between 1 and %d", SectionCount))
	}
	return d.sections[n-1], nil
}

// Sections returns all 16 sections in numeric order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, SectionCount)
	copy(out, d.sections[:])
	return out
}

// Complete reports whether every section is complete.
func (d *Document) Complete() bool {
	for _, s := range d.sections {
		if !s.Complete() {
			return false
		}
	}
	return true
}

// View converts the document to its wire representation.
func (d *Document) View() sdstypes.DocumentView {
	sections := make([]sdstypes.SectionView, SectionCount)
	for i, s := range d.sections {
		sections[i] = s.View()
	}
	return sdstypes.DocumentView{
		ID:          d.ID,
		Identity:    d.IdentityView(),
		Sections:    sections,
		Complete:    d.Complete(),
		GeneratedAt: d.GeneratedAt,
	}
}

// IdentityView summarises the resolved molecule for the wire.
func (d *Document) IdentityView() sdstypes.IdentityView {
	return sdstypes.IdentityView{
		InputSMILES:     d.Identity.InputSMILES,
		CanonicalSMILES: d.Identity.CanonicalSMILES,
		StructureKey:    d.Identity.StructureKey,
		Formula:         d.Identity.Formula,
		MolecularWeight: d.Identity.MolecularWeight,
		Name:            d.Identity.Name,
		Synonyms:        d.Identity.Synonyms,
	}
}

// Record converts the document to its persistence row.
func (d *Document) Record() sdstypes.DocumentRecord {
	return sdstypes.DocumentRecord{
		ID:           d.ID,
		StructureKey: d.Identity.StructureKey,
		SMILES:       d.Identity.CanonicalSMILES,
		Formula:      d.Identity.Formula,
		Name:         d.Identity.Name,
		Complete:     d.Complete(),
		GeneratedAt:  d.GeneratedAt,
	}
}

//Personal.AI order the ending
