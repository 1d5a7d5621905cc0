// Package sds defines the Data Transfer Objects, enumerations, and
// request/response structures shared by every layer of the ChemSDS engine.
// No domain logic lives here — only plain data types that are safe to import
// from any layer without creating circular dependencies.
package sds

import (
	"github.com/turtacn/ChemSDS/pkg/types/common"
)

// NotAvailable is the canonical marker for a field whose value no source
// could supply.  It is a real value, never an absent key: consumers can rely
// on every mandatory field being present.
const NotAvailable = "Not available"

// ─────────────────────────────────────────────────────────────────────────────
// Provenance — where a field's value came from
// ─────────────────────────────────────────────────────────────────────────────

// Provenance records the origin of a document field so computed, fetched,
// and defaulted values stay distinguishable and reproducible.
type Provenance string

const (
	// SourceComputed marks values derived locally from the molecular graph.
	SourceComputed Provenance = "computed"

	// SourceFetched marks values obtained from an external reference source.
	SourceFetched Provenance = "fetched"

	// SourceDefault marks values filled in by the deterministic defaulting
	// policy when no source had data.
	SourceDefault Provenance = "default"

	// SourceUnavailable marks fields explicitly carrying the NotAvailable
	// placeholder after every source declined or failed.
	SourceUnavailable Provenance = "unavailable"
)

// ─────────────────────────────────────────────────────────────────────────────
// PropertyKey — the fixed property vocabulary
// ─────────────────────────────────────────────────────────────────────────────

// PropertyKey names one entry of the fixed property vocabulary.  Absence of a
// key in a provider response is meaningful (the provider had nothing); the
// adapter converts absence into an explicit unavailable value before the
// assembler ever sees the record.
type PropertyKey string

const (
	KeyMolecularWeight   PropertyKey = "molecular_weight"
	KeyMolecularFormula  PropertyKey = "molecular_formula"
	KeyHeavyAtomCount    PropertyKey = "heavy_atom_count"
	KeyRingCount         PropertyKey = "ring_count"
	KeyAromaticRingCount PropertyKey = "aromatic_ring_count"
	KeyHBondDonors       PropertyKey = "h_bond_donors"
	KeyHBondAcceptors    PropertyKey = "h_bond_acceptors"
	KeyRotatableBonds    PropertyKey = "rotatable_bonds"
	KeyTPSA              PropertyKey = "tpsa"
	KeyLogP              PropertyKey = "log_p"
	KeyFractionCSP3      PropertyKey = "fraction_csp3"
	KeyPhysicalState     PropertyKey = "physical_state"
	KeySolubilityWater   PropertyKey = "solubility_water"
	KeyMeltingPoint      PropertyKey = "melting_point"
	KeyBoilingPoint      PropertyKey = "boiling_point"
	KeyFlashPoint        PropertyKey = "flash_point"
	KeyDensity           PropertyKey = "density"
	KeyVaporPressure     PropertyKey = "vapor_pressure"
	KeyAppearance        PropertyKey = "appearance"
	KeyOdor              PropertyKey = "odor"
	KeyCASNumber         PropertyKey = "cas_number"
	KeyPubChemCID        PropertyKey = "pubchem_cid"
	KeyIUPACName         PropertyKey = "iupac_name"
	KeyCommonName        PropertyKey = "common_name"
	KeySynonyms          PropertyKey = "synonyms"
)

// AllPropertyKeys enumerates the complete vocabulary in declaration order.
// The adapter requests exactly this set for a full document build.
var AllPropertyKeys = []PropertyKey{
	KeyMolecularWeight, KeyMolecularFormula, KeyHeavyAtomCount,
	KeyRingCount, KeyAromaticRingCount, KeyHBondDonors, KeyHBondAcceptors,
	KeyRotatableBonds, KeyTPSA, KeyLogP, KeyFractionCSP3,
	KeyPhysicalState, KeySolubilityWater, KeyMeltingPoint, KeyBoilingPoint,
	KeyFlashPoint, KeyDensity, KeyVaporPressure, KeyAppearance, KeyOdor,
	KeyCASNumber, KeyPubChemCID, KeyIUPACName, KeyCommonName, KeySynonyms,
}

// IsKnownPropertyKey reports whether k belongs to the fixed vocabulary.
func IsKnownPropertyKey(k PropertyKey) bool {
	for _, known := range AllPropertyKeys {
		if known == k {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// TaggedValue — a value that carries its own provenance
// ─────────────────────────────────────────────────────────────────────────────

// TaggedValue is a property value annotated with unit, origin, and a coarse
// confidence estimate.  Representing every field this way makes "not
// available" a first-class state instead of implicit nullability.
type TaggedValue struct {
	Value      string     `json:"value"`
	Unit       string     `json:"unit,omitempty"`
	Source     Provenance `json:"source"`
	Confidence float64    `json:"confidence"`
}

// Unavailable returns the canonical placeholder value.
func Unavailable() TaggedValue {
	return TaggedValue{Value: NotAvailable, Source: SourceUnavailable}
}

// IsAvailable reports whether the value carries real data rather than the
// unavailable placeholder.
func (v TaggedValue) IsAvailable() bool {
	return v.Source != SourceUnavailable && v.Source != SourceDefault && v.Value != NotAvailable
}

// ─────────────────────────────────────────────────────────────────────────────
// Hazard classification results
// ─────────────────────────────────────────────────────────────────────────────

// HazardCategory groups a structural alert by the kind of danger it signals.
type HazardCategory string

const (
	HazardExplosive      HazardCategory = "Explosive"
	HazardUnstable       HazardCategory = "Unstable"
	HazardReactive       HazardCategory = "Reactive"
	HazardPyrophoric     HazardCategory = "Pyrophoric"
	HazardBasic          HazardCategory = "Basic"
	HazardCorrosive      HazardCategory = "Corrosive"
	HazardHydrolysis     HazardCategory = "Hydrolysis"
	HazardPolymerizable  HazardCategory = "Polymerizable"
	HazardFlammable      HazardCategory = "Flammable"
	HazardToxic          HazardCategory = "Toxic"
	HazardEnvironmental  HazardCategory = "Environmental"
)

// SeverityLevel orders hazard statements from informational to critical.
type SeverityLevel int

const (
	SeverityLow SeverityLevel = iota + 1
	SeverityModerate
	SeverityHigh
	SeverityCritical
)

// HazardStatement is one classification finding.  The set of statements on a
// document may be empty but is never absent.
type HazardStatement struct {
	Code     string         `json:"code"`
	Category HazardCategory `json:"category"`
	Severity SeverityLevel  `json:"severity"`
	Phrase   string         `json:"phrase"`
}

// ToxicityClass is the predicted acute toxicity band, Class I (worst) through
// Class IV (low concern).
type ToxicityClass string

const (
	ToxClassIExtreme ToxicityClass = "Class I (Extremely High)"
	ToxClassIVery    ToxicityClass = "Class I (Very High)"
	ToxClassII       ToxicityClass = "Class II (High)"
	ToxClassIII      ToxicityClass = "Class III (Moderate)"
	ToxClassIV       ToxicityClass = "Class IV (Low)"
)

// SignalWord is the GHS label signal word.
type SignalWord string

const (
	SignalDanger  SignalWord = "Danger"
	SignalWarning SignalWord = "Warning"
)

// ─────────────────────────────────────────────────────────────────────────────
// Document views and transport formats
// ─────────────────────────────────────────────────────────────────────────────

// DocumentFormat selects an export encoding.
type DocumentFormat string

const (
	FormatJSON DocumentFormat = "json"
	FormatPDF  DocumentFormat = "pdf"
)

// FieldView is a single rendered key/value pair with its provenance, in the
// declaration order of its section.
type FieldView struct {
	Key    string     `json:"key"`
	Value  string     `json:"value"`
	Unit   string     `json:"unit,omitempty"`
	Source Provenance `json:"source"`
}

// SectionView is one of the 16 sections as exposed over the API.
type SectionView struct {
	Number      int         `json:"number"`
	Title       string      `json:"title"`
	Fields      []FieldView `json:"fields"`
	Complete    bool        `json:"complete"`
	DataSources []string    `json:"data_sources"`
	Notes       []string    `json:"notes,omitempty"`
}

// IdentityView summarises the resolved molecule on the wire.
type IdentityView struct {
	InputSMILES     string   `json:"input_smiles"`
	CanonicalSMILES string   `json:"canonical_smiles"`
	StructureKey    string   `json:"structure_key"`
	Formula         string   `json:"formula"`
	MolecularWeight float64  `json:"molecular_weight"`
	Name            string   `json:"name"`
	Synonyms        []string `json:"synonyms,omitempty"`
}

// DocumentView is the complete wire representation of one generated SDS.
type DocumentView struct {
	ID          common.ID        `json:"id"`
	Identity    IdentityView     `json:"identity"`
	Sections    []SectionView    `json:"sections"`
	Complete    bool             `json:"complete"`
	GeneratedAt common.Timestamp `json:"generated_at"`
}

// GenerateRequest asks for a new document.  Fetch opts in to external
// lookups; when false only the computed source runs.
type GenerateRequest struct {
	SMILES string `json:"smiles"`
	Fetch  bool   `json:"fetch,omitempty"`
}

// CatalogEntry lists one section title for the fixed catalog endpoint.
type CatalogEntry struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// DocumentRecord is the persisted generation-history row.
type DocumentRecord struct {
	ID           common.ID        `json:"id"`
	StructureKey string           `json:"structure_key"`
	SMILES       string           `json:"smiles"`
	Formula      string           `json:"formula"`
	Name         string           `json:"name"`
	Complete     bool             `json:"complete"`
	GeneratedAt  common.Timestamp `json:"generated_at"`
}

//Personal.AI order the ending
