// Package sds provides the application-level service for SDS generation.
// It orchestrates the pipeline — identity resolution, property gathering,
// hazard classification, section assembly — and serves as the interface
// between transport handlers and domain logic.
package sds

import (
	"fmt"
	"strings"

	"github.com/turtacn/ChemSDS/internal/domain/hazard"
	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// assembler builds the 16 sections for one request.  It is a pure transform:
// single pass, no intermediate persisted state, no failure modes once its
// inputs exist.  Each buildSectionN corresponds to one row of the fixed
// section→field mapping.
type assembler struct {
	id      *identity.MoleculeIdentity
	record  *property.Record
	hazards *hazard.Assessment
	date    string
}

// assemble produces all 16 sections in numeric order.
func (a *assembler) assemble() []*sheet.Section {
	builders := []func(*sheet.Section){
		a.buildSection1, a.buildSection2, a.buildSection3, a.buildSection4,
		a.buildSection5, a.buildSection6, a.buildSection7, a.buildSection8,
		a.buildSection9, a.buildSection10, a.buildSection11, a.buildSection12,
		a.buildSection13, a.buildSection14, a.buildSection15, a.buildSection16,
	}
	sections := make([]*sheet.Section, sheet.SectionCount)
	for i, build := range builders {
		s, _ := sheet.NewSection(i + 1) // i+1 is always in range
		build(s)
		sections[i] = s
	}
	return sections
}

// prop copies a property value — with its provenance — into the section.
func (a *assembler) prop(s *sheet.Section, label string, key sdstypes.PropertyKey) {
	s.Add(label, a.record.Get(key))
}

func (a *assembler) synonymsJoined(max int) string {
	if len(a.id.Synonyms) == 0 {
		return ""
	}
	syns := a.id.Synonyms
	if len(syns) > max {
		syns = syns[:max]
	}
	return strings.Join(syns, ", ")
}

func (a *assembler) buildSection1(s *sheet.Section) {
	s.AddText("Product Identifier", a.id.Name, sdstypes.SourceComputed)
	s.AddText("Other Names", a.synonymsJoined(3), sdstypes.SourceFetched)
	s.AddText("Synonyms", a.synonymsJoined(10), sdstypes.SourceFetched)
	a.prop(s, "CAS Number", sdstypes.KeyCASNumber)
	a.prop(s, "PubChem CID", sdstypes.KeyPubChemCID)
	s.AddText("Molecular Formula", a.id.Formula, sdstypes.SourceComputed)
	s.Add("Molecular Weight", sdstypes.TaggedValue{
		Value:      fmt.Sprintf("%.2f", a.id.MolecularWeight),
		Unit:       "g/mol",
		Source:     sdstypes.SourceComputed,
		Confidence: 1,
	})
	s.AddText("Date of SDS", a.date, sdstypes.SourceComputed)
	s.AddDefault("Recommended Use", "Laboratory research use only")
	s.DataSources = []string{"Structure-derived identity"}
	s.Notes = []string{"This SDS is generated for research purposes only"}
}

func (a *assembler) buildSection2(s *sheet.Section) {
	s.AddText("Chemical Name", a.id.Name, sdstypes.SourceComputed)
	a.prop(s, "Common Name", sdstypes.KeyCommonName)
	a.prop(s, "CAS Number", sdstypes.KeyCASNumber)
	s.AddText("Molecular Formula", a.id.Formula, sdstypes.SourceComputed)
	s.AddText("SMILES", a.id.CanonicalSMILES, sdstypes.SourceComputed)
	s.AddText("Structure Key", a.id.StructureKey, sdstypes.SourceComputed)
	a.prop(s, "IUPAC Name", sdstypes.KeyIUPACName)
	s.AddDefault("Concentration/Purity", "≥95% (typical research grade)")
	s.AddDefault("Impurities", "May contain trace organic impurities (<5%)")
	s.AddDefault("Hazardous Ingredients", "This entire product")
	a.prop(s, "Hydrogen Bond Donors", sdstypes.KeyHBondDonors)
	a.prop(s, "Hydrogen Bond Acceptors", sdstypes.KeyHBondAcceptors)
	s.DataSources = []string{"Structure-derived identity", "Computed descriptors"}
	s.Notes = []string{"Composition based on theoretical structure"}
}

func (a *assembler) buildSection3(s *sheet.Section) {
	h := a.hazards
	s.AddText("GHS Classification", h.GHSClassification, sdstypes.SourceComputed)
	s.AddText("Signal Word", string(h.SignalWord), sdstypes.SourceComputed)
	s.AddText("GHS Pictograms", strings.Join(h.Pictograms, ", "), sdstypes.SourceComputed)
	s.AddText("Hazard Statements", hazardPhrases(h), sdstypes.SourceComputed)
	s.AddDefault("Precautionary Statements",
		"P264 - Wash hands thoroughly after handling. P280 - Wear protective gloves/clothing/eye protection.")
	if h.Flammable {
		s.AddText("Physical Hazards", "Flammable liquid", sdstypes.SourceComputed)
	} else {
		s.AddText("Physical Hazards", "Combustible material", sdstypes.SourceComputed)
	}
	s.AddText("Health Hazards", fmt.Sprintf("Acute toxicity (%s)", h.Toxicity.Class), sdstypes.SourceComputed)
	s.AddText("Environmental Hazards", h.Environmental.AquaticHazard, sdstypes.SourceComputed)
	s.AddDefault("Routes of Exposure", "Inhalation, Dermal contact, Eye contact, Ingestion")
	s.AddText("Target Organs", strings.Join(h.Toxicity.TargetOrgans, ", "), sdstypes.SourceComputed)
	s.AddText("Hazard Class", string(h.Toxicity.Class), sdstypes.SourceComputed)
	s.DataSources = []string{"Structure-based classification", "GHS guidelines"}
	s.Notes = []string{"Classification based on computational predictions"}
}

func (a *assembler) buildSection4(s *sheet.Section) {
	h := a.hazards
	corrosiveOrReactive := hasAnyCategory(h, sdstypes.HazardCorrosive, sdstypes.HazardReactive)

	if hasAnyCategory(h, sdstypes.HazardBasic, sdstypes.HazardCorrosive, sdstypes.HazardReactive) {
		s.AddText("Inhalation",
			"Move to fresh air immediately. If breathing is difficult, administer oxygen. Get medical attention immediately.",
			sdstypes.SourceComputed)
	} else {
		s.AddDefault("Inhalation", "Move to fresh air. If symptoms persist, seek medical attention.")
	}

	if corrosiveOrReactive {
		s.AddText("Skin Contact",
			"Remove contaminated clothing. Flush skin with large amounts of water for at least 15 minutes. Get medical attention immediately.",
			sdstypes.SourceComputed)
		s.AddText("Eye Contact",
			"Flush eyes with clean water for at least 15 minutes, lifting eyelids occasionally. Get immediate medical attention.",
			sdstypes.SourceComputed)
		s.AddText("Ingestion",
			"Do NOT induce vomiting or give anything by mouth. Rinse mouth if conscious. Get immediate medical attention.",
			sdstypes.SourceComputed)
	} else {
		s.AddDefault("Skin Contact",
			"Remove contaminated clothing. Wash with soap and water. If irritation persists, seek medical attention.")
		s.AddDefault("Eye Contact",
			"Flush eyes with water for at least 15 minutes. If irritation persists, seek medical attention.")
		s.AddDefault("Ingestion",
			"If conscious and alert, rinse mouth and drink water. Do not induce vomiting unless directed by medical personnel.")
	}

	s.AddText("Most Important Symptoms", firstAidSymptoms(h), sdstypes.SourceComputed)
	s.AddText("Notes to Physician", physicianNotes(h), sdstypes.SourceComputed)
	s.AddDefault("Protection of First Aiders", "Use appropriate protective equipment to avoid exposure.")
	s.DataSources = []string{"Structure-based first aid prediction"}
	s.Notes = []string{"Follow standard chemical exposure first aid procedures"}
}

func (a *assembler) buildSection5(s *sheet.Section) {
	h := a.hazards
	a.prop(s, "Flash Point", sdstypes.KeyFlashPoint)
	s.AddDefault("Suitable Extinguishing Media",
		"Carbon dioxide, dry chemical powder, alcohol-resistant foam, water spray")
	s.AddDefault("Unsuitable Extinguishing Media", "Water jet (may spread fire)")
	s.AddDefault("Protective Equipment for Firefighters",
		"Self-contained breathing apparatus (SCBA) and full protective clothing")
	if h.Flammable {
		s.AddText("Unusual Fire/Explosion Hazards",
			"Vapors may form explosive mixtures with air. Vapors heavier than air.", sdstypes.SourceComputed)
		s.AddText("Sensitivity to Static Discharge", "May be sensitive", sdstypes.SourceComputed)
	} else {
		s.AddDefault("Unusual Fire/Explosion Hazards", "None expected under normal conditions")
		s.AddText("Sensitivity to Static Discharge", "Not sensitive", sdstypes.SourceComputed)
	}
	s.AddText("Hazardous Combustion Products", h.DecompositionProducts(), sdstypes.SourceComputed)
	s.DataSources = []string{"Fire safety guidelines", "Chemical property predictions"}
	s.Notes = []string{"Fire fighting procedures based on chemical class"}
}

func (a *assembler) buildSection6(s *sheet.Section) {
	s.AddDefault("Personal Precautions",
		"Evacuate personnel. Wear appropriate PPE. Ensure adequate ventilation. Eliminate ignition sources.")
	s.AddDefault("Environmental Precautions",
		"Prevent entry into waterways, sewers, or soil. Contain spill to minimize environmental impact.")
	s.AddDefault("Methods of Containment",
		"Stop leak if safe to do so. Contain with non-combustible absorbent material.")
	s.AddDefault("Methods of Cleaning Up",
		"Absorb with inert material. Collect in appropriate containers for disposal.")
	s.AddDefault("Reference to Other Sections", "See Sections 8 and 13 for exposure controls and disposal")
	s.DataSources = []string{"Spill response guidelines"}
	s.Notes = []string{"Follow institutional spill response procedures"}
}

func (a *assembler) buildSection7(s *sheet.Section) {
	h := a.hazards
	s.AddDefault("Precautions for Safe Handling",
		"Use in well-ventilated areas. Avoid contact with skin and eyes. Ground containers when transferring.")
	s.AddDefault("Conditions for Safe Storage",
		"Store in cool, dry place. Keep container tightly closed. Store away from incompatible materials.")
	s.AddDefault("Storage Temperature", "Room temperature (15-25°C)")
	s.AddText("Incompatible Materials", h.IncompatibleMaterials(), sdstypes.SourceComputed)
	s.AddText("Conditions to Avoid", h.ConditionsToAvoid(), sdstypes.SourceComputed)
	s.AddDefault("Container Materials", "Glass, PTFE, stainless steel. Avoid reactive metals.")
	s.DataSources = []string{"Chemical storage guidelines", "Structure-based classification"}
	s.Notes = []string{"Follow institutional chemical storage procedures"}
}

func (a *assembler) buildSection8(s *sheet.Section) {
	h := a.hazards
	s.AddText("TLV-TWA", h.Exposure.TWA, sdstypes.SourceComputed)
	s.AddText("TLV-STEL", h.Exposure.STEL, sdstypes.SourceComputed)
	s.AddText("Engineering Controls", h.Exposure.EngineeringControls, sdstypes.SourceComputed)
	s.AddDefault("Eye Protection", "Safety goggles or face shield")
	s.AddDefault("Skin Protection", "Chemical-resistant gloves (nitrile, neoprene). Lab coat, long pants.")
	if h.Exposure.TWA == "Not established" {
		s.AddDefault("Respiratory Protection", "Not normally required")
	} else {
		s.AddText("Respiratory Protection",
			"NIOSH approved respirator if exposure limits exceeded", sdstypes.SourceComputed)
	}
	s.AddDefault("Hygiene Measures",
		"Wash hands thoroughly after handling. No eating, drinking, or smoking in work areas.")
	s.DataSources = []string{"Exposure control guidelines", "Toxicity prediction"}
	s.Notes = []string{"Adjust PPE based on quantity and exposure potential"}
}

func (a *assembler) buildSection9(s *sheet.Section) {
	a.prop(s, "Physical State", sdstypes.KeyPhysicalState)
	a.prop(s, "Appearance", sdstypes.KeyAppearance)
	a.prop(s, "Odor", sdstypes.KeyOdor)
	a.prop(s, "Melting Point", sdstypes.KeyMeltingPoint)
	a.prop(s, "Boiling Point", sdstypes.KeyBoilingPoint)
	a.prop(s, "Flash Point", sdstypes.KeyFlashPoint)
	a.prop(s, "Vapor Pressure", sdstypes.KeyVaporPressure)
	a.prop(s, "Density", sdstypes.KeyDensity)
	a.prop(s, "Solubility in Water", sdstypes.KeySolubilityWater)
	a.prop(s, "Partition Coefficient (log P)", sdstypes.KeyLogP)
	a.prop(s, "Molecular Weight", sdstypes.KeyMolecularWeight)
	a.prop(s, "Molecular Formula", sdstypes.KeyMolecularFormula)
	a.prop(s, "Heavy Atom Count", sdstypes.KeyHeavyAtomCount)
	a.prop(s, "Ring Count", sdstypes.KeyRingCount)
	a.prop(s, "Aromatic Ring Count", sdstypes.KeyAromaticRingCount)
	a.prop(s, "Hydrogen Bond Donors", sdstypes.KeyHBondDonors)
	a.prop(s, "Hydrogen Bond Acceptors", sdstypes.KeyHBondAcceptors)
	a.prop(s, "Rotatable Bonds", sdstypes.KeyRotatableBonds)
	a.prop(s, "TPSA", sdstypes.KeyTPSA)
	a.prop(s, "Fraction Csp3", sdstypes.KeyFractionCSP3)
	s.DataSources = []string{"Computed descriptors", "Property predictions"}
	s.Notes = []string{"Physical properties estimated from molecular structure"}
}

func (a *assembler) buildSection10(s *sheet.Section) {
	h := a.hazards
	s.AddText("Chemical Stability", h.StabilitySummary(), sdstypes.SourceComputed)
	s.AddText("Reactivity", h.ReactivitySummary(), sdstypes.SourceComputed)
	if len(h.Alerts) > 0 {
		s.AddText("Possibility of Hazardous Reactions",
			fmt.Sprintf("Yes - %d reactive functional groups identified", len(h.Alerts)),
			sdstypes.SourceComputed)
	} else {
		s.AddText("Possibility of Hazardous Reactions", "None under normal processing", sdstypes.SourceComputed)
	}
	s.AddText("Conditions to Avoid", h.ConditionsToAvoid(), sdstypes.SourceComputed)
	s.AddText("Incompatible Materials", h.IncompatibleMaterials(), sdstypes.SourceComputed)
	s.AddText("Hazardous Decomposition Products", h.DecompositionProducts(), sdstypes.SourceComputed)
	s.AddText("Hazardous Polymerization", h.PolymerizationRisk(), sdstypes.SourceComputed)
	s.DataSources = []string{"Structural reactivity analysis"}
	s.Notes = []string{"Stability assessment based on chemical structure"}
}

func (a *assembler) buildSection11(s *sheet.Section) {
	h := a.hazards
	s.AddText("Oral LD50 (predicted)", h.Toxicity.LD50Oral, sdstypes.SourceComputed)
	s.AddText("Inhalation LC50 (predicted)", h.Toxicity.LC50Inhalation, sdstypes.SourceComputed)
	s.AddText("Toxicity Classification", string(h.Toxicity.Class), sdstypes.SourceComputed)
	s.AddText("Target Organs", strings.Join(h.Toxicity.TargetOrgans, ", "), sdstypes.SourceComputed)
	s.AddText("Hazard Endpoints", strings.Join(h.Toxicity.Endpoints, ", "), sdstypes.SourceComputed)
	s.AddText("Prediction Confidence", h.Toxicity.Confidence, sdstypes.SourceComputed)
	s.AddDefault("Skin Corrosion/Irritation", "May cause skin irritation")
	s.AddDefault("Serious Eye Damage/Irritation", "May cause eye irritation")
	s.AddDefault("Carcinogenicity", "Not classified")
	s.AddDefault("Routes of Exposure", "Inhalation, dermal contact, eye contact, ingestion")
	s.DataSources = []string{"Toxicity predictions", "Structure-activity relationships"}
	s.Notes = []string{"Toxicity data based on computational predictions"}
}

func (a *assembler) buildSection12(s *sheet.Section) {
	h := a.hazards
	s.AddText("Ecotoxicity", h.Environmental.AquaticHazard, sdstypes.SourceComputed)
	s.AddText("Biodegradability", h.Environmental.Biodegradability, sdstypes.SourceComputed)
	s.AddText("Bioaccumulative Potential", h.Environmental.Bioaccumulation, sdstypes.SourceComputed)
	s.AddText("Mobility in Soil", h.Environmental.SoilMobility, sdstypes.SourceComputed)
	s.AddDefault("Persistence and Degradability", "Expected to partition between water, sediment, and biota")
	s.AddDefault("Other Adverse Effects", "May cause long-term adverse effects in aquatic environment")
	s.DataSources = []string{"Ecological modeling", "Property-based predictions"}
	s.Notes = []string{"Environmental fate based on physicochemical properties"}
}

func (a *assembler) buildSection13(s *sheet.Section) {
	s.AddDefault("Waste Treatment Methods", "Incineration at licensed hazardous waste facility")
	s.AddDefault("Disposal Methods", "Dispose according to local, state, and federal regulations")
	s.AddDefault("Contaminated Packaging",
		"Containers should be completely emptied and disposed as hazardous waste")
	s.AddDefault("Special Precautions", "Do not dispose in regular trash or sewage system")
	s.AddDefault("Recommended Method", "Contract with licensed waste disposal company")
	s.DataSources = []string{"Waste disposal guidelines"}
	s.Notes = []string{"Consult local environmental regulations before disposal"}
}

func (a *assembler) buildSection14(s *sheet.Section) {
	h := a.hazards
	s.AddText("UN Number", h.Transport.UNNumber, sdstypes.SourceComputed)
	s.AddText("UN Proper Shipping Name", h.Transport.ShippingName, sdstypes.SourceComputed)
	s.AddText("Transport Hazard Class", h.Transport.HazardClass, sdstypes.SourceComputed)
	s.AddText("Packing Group", h.Transport.PackingGroup, sdstypes.SourceComputed)
	s.AddDefault("Marine Pollutant", "No")
	s.AddDefault("Special Precautions", "Follow DOT regulations for hazardous materials")
	s.DataSources = []string{"Transport classification rules"}
	s.Notes = []string{"Verify current transport regulations before shipping"}
}

func (a *assembler) buildSection15(s *sheet.Section) {
	s.AddDefault("TSCA Status", "Not listed")
	s.AddDefault("EINECS/ELINCS (EU)", "Not listed")
	s.AddDefault("WHMIS Classification", "Not classified")
	s.AddText("GHS Classification", a.hazards.GHSClassification, sdstypes.SourceComputed)
	s.AddDefault("California Proposition 65", "Not listed")
	s.AddDefault("State Regulations", "May be regulated under state chemical laws")
	s.AddDefault("International Regulations", "Subject to country-specific chemical regulations")
	s.DataSources = []string{"Regulatory defaults"}
	s.Notes = []string{"Regulatory status may change. Verify current requirements."}
}

func (a *assembler) buildSection16(s *sheet.Section) {
	s.AddText("Date of Preparation", a.date, sdstypes.SourceComputed)
	s.AddDefault("Revision Number", "1.0")
	s.AddDefault("Prepared By", "ChemSDS automated generator")
	s.AddText("Structure Key", a.id.StructureKey, sdstypes.SourceComputed)
	s.AddDefault("Data Limitations",
		"Some values are computationally predicted. Laboratory verification recommended.")
	s.AddDefault("Disclaimer",
		"This SDS is generated for research purposes using computational methods. Users must verify all information through laboratory testing and consult authoritative sources. No warranty is provided for accuracy or completeness.")
	s.DataSources = []string{"System metadata"}
	s.Notes = []string{"SDS generated successfully"}
}

// ─────────────────────────────────────────────────────────────────────────────
// Hazard text helpers
// ─────────────────────────────────────────────────────────────────────────────

func hazardPhrases(h *hazard.Assessment) string {
	if len(h.Statements) == 0 {
		return "No hazards identified by structural analysis"
	}
	phrases := make([]string, len(h.Statements))
	for i, st := range h.Statements {
		phrases[i] = fmt.Sprintf("%s - %s", st.Code, st.Phrase)
	}
	return strings.Join(phrases, "; ")
}

func hasAnyCategory(h *hazard.Assessment, cats ...sdstypes.HazardCategory) bool {
	for _, alert := range h.Alerts {
		for _, c := range cats {
			if alert.Category == c {
				return true
			}
		}
	}
	return false
}

func firstAidSymptoms(h *hazard.Assessment) string {
	var symptoms []string
	if hasAnyCategory(h, sdstypes.HazardCorrosive) {
		symptoms = append(symptoms, "Burns to skin, eyes, and mucous membranes")
	}
	if hasAnyCategory(h, sdstypes.HazardBasic) {
		symptoms = append(symptoms, "Respiratory irritation")
	}
	if len(symptoms) == 0 {
		return "Irritation to eyes, skin, and respiratory tract"
	}
	return strings.Join(symptoms, "; ")
}

func physicianNotes(h *hazard.Assessment) string {
	var notes []string
	if hasAnyCategory(h, sdstypes.HazardExplosive, sdstypes.HazardUnstable) {
		notes = append(notes, "Compound may be unstable - handle contaminated materials carefully")
	}
	if len(notes) == 0 {
		return "Treat symptomatically. Show this SDS to medical personnel."
	}
	return strings.Join(notes, "; ")
}

//Personal.AI order the ending
