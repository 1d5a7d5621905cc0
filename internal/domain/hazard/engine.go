package hazard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/ChemSDS/internal/chem"
	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// Flammability and bioaccumulation cutoffs on the estimated partition
// coefficient.  Model constants, not tunables.
const (
	flammableLogP       = 1.5
	aquaticHazardLogP   = 3.0
	bioaccumulationLogP = 3.5
)

// Environmental is the predicted environmental fate.
type Environmental struct {
	Biodegradability string
	Bioaccumulation  string
	SoilMobility     string
	AquaticHazard    string
}

// Exposure carries the predicted occupational exposure limits.
type Exposure struct {
	TWA                 string
	STEL                string
	EngineeringControls string
}

// Transport is the predicted dangerous-goods classification.
type Transport struct {
	HazardClass  string
	PackingGroup string
	ShippingName string
	UNNumber     string
}

// Assessment is the complete, deterministic hazard classification for one
// molecule.  The Statements slice may be empty but is never nil.
type Assessment struct {
	Statements        []sdstypes.HazardStatement
	Alerts            []ReactivityAlert
	Toxicity          Toxicity
	Flammable         bool
	GHSClassification string
	SignalWord        sdstypes.SignalWord
	Pictograms        []string
	Environmental     Environmental
	Exposure          Exposure
	Transport         Transport
}

// Engine evaluates the rule table against resolved molecules.  It is
// stateless and safe for concurrent use.
type Engine struct {
	logger logging.Logger
}

// NewEngine constructs a hazard classification engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{logger: logger}
}

// Classify produces the full assessment for a resolved identity.  A nil or
// structureless identity is a hard precondition failure; everything past
// that point cannot fail.
func (e *Engine) Classify(id *identity.MoleculeIdentity) (*Assessment, error) {
	if id == nil || id.Molecule() == nil {
		return nil, errors.New(errors.ErrCodeHazardPrecondition, "classification requires a resolved molecule identity")
	}

	mol := id.Molecule()
	desc := chem.ComputeDescriptors(mol)
	alerts := EvaluateReactivity(mol)
	tox := PredictToxicity(mol, desc, alerts)
	flammable := desc.LogP > flammableLogP

	a := &Assessment{
		Alerts:        alerts,
		Toxicity:      tox,
		Flammable:     flammable,
		Environmental: predictEnvironmental(desc),
		Exposure:      predictExposure(tox),
		Transport:     classifyTransport(alerts, flammable),
	}
	a.GHSClassification = ghsClassification(tox, flammable)
	a.SignalWord = signalWord(tox)
	a.Pictograms = pictograms(tox, flammable)
	a.Statements = buildStatements(a, desc)

	e.logger.Debug("hazard classification complete",
		logging.String("structure_key", id.StructureKey),
		logging.Int("alerts", len(alerts)),
		logging.String("toxicity_class", string(tox.Class)),
		logging.Bool("flammable", flammable))

	return a, nil
}

// ghsClassification maps the toxicity and flammability flags into the GHS
// shorthand used on labels.
func ghsClassification(tox Toxicity, flammable bool) string {
	switch {
	case tox.Severe() && flammable:
		return "Acute Tox. 3, Flam. Liq. 3"
	case tox.Severe():
		return "Acute Tox. 3"
	case flammable:
		return "Flam. Liq. 3"
	default:
		return "Not classified"
	}
}

func signalWord(tox Toxicity) sdstypes.SignalWord {
	if tox.Severe() {
		return sdstypes.SignalDanger
	}
	return sdstypes.SignalWarning
}

func pictograms(tox Toxicity, flammable bool) []string {
	var p []string
	if flammable {
		p = append(p, "GHS02 (Flame)")
	}
	if tox.Severe() {
		p = append(p, "GHS06 (Skull and crossbones)", "GHS08 (Health hazard)")
	}
	if len(p) == 0 {
		p = append(p, "GHS07 (Exclamation mark)")
	}
	return p
}

// buildStatements flattens every finding into the uniform statement form the
// document carries.  Order: reactivity alerts in table order, then the
// flammability, toxicity, and environmental findings.
func buildStatements(a *Assessment, desc chem.Descriptors) []sdstypes.HazardStatement {
	statements := make([]sdstypes.HazardStatement, 0, len(a.Alerts)+3)
	for _, alert := range a.Alerts {
		statements = append(statements, sdstypes.HazardStatement{
			Code:     alert.Code,
			Category: alert.Category,
			Severity: alert.Severity,
			Phrase:   alert.Description,
		})
	}
	if a.Flammable {
		statements = append(statements, sdstypes.HazardStatement{
			Code:     "FL-001",
			Category: sdstypes.HazardFlammable,
			Severity: sdstypes.SeverityHigh,
			Phrase:   "Flammable liquid and vapour (predicted from partition coefficient)",
		})
	}
	if a.Toxicity.Severe() {
		statements = append(statements, sdstypes.HazardStatement{
			Code:     "TX-001",
			Category: sdstypes.HazardToxic,
			Severity: sdstypes.SeverityHigh,
			Phrase:   fmt.Sprintf("Acute toxicity predicted: %s", a.Toxicity.Class),
		})
	}
	if desc.LogP > aquaticHazardLogP {
		statements = append(statements, sdstypes.HazardStatement{
			Code:     "EN-001",
			Category: sdstypes.HazardEnvironmental,
			Severity: sdstypes.SeverityModerate,
			Phrase:   "Harmful to aquatic life",
		})
	}
	return statements
}

func predictEnvironmental(d chem.Descriptors) Environmental {
	env := Environmental{}

	switch {
	case d.MolecularWeight < 500 && d.LogP < 4:
		env.Biodegradability = "Readily biodegradable (predicted)"
	case d.MolecularWeight > 1000 || d.LogP > 6:
		env.Biodegradability = "Not readily biodegradable (predicted)"
	default:
		env.Biodegradability = "Potentially biodegradable (predicted)"
	}

	switch {
	case d.LogP > bioaccumulationLogP:
		env.Bioaccumulation = "High potential for bioaccumulation"
	case d.LogP > 2:
		env.Bioaccumulation = "Moderate potential for bioaccumulation"
	default:
		env.Bioaccumulation = "Low potential for bioaccumulation"
	}

	switch {
	case d.LogP < 2:
		env.SoilMobility = "High mobility in soil/water"
	case d.LogP < 4:
		env.SoilMobility = "Moderate mobility in soil"
	default:
		env.SoilMobility = "Low mobility, tends to adsorb to sediments"
	}

	if d.LogP > aquaticHazardLogP {
		env.AquaticHazard = "Harmful to aquatic life"
	} else {
		env.AquaticHazard = "May cause environmental effects"
	}

	return env
}

func predictExposure(tox Toxicity) Exposure {
	exp := Exposure{}
	switch tox.Class {
	case sdstypes.ToxClassIExtreme:
		exp.TWA = "0.01 mg/m³ (predicted)"
		exp.STEL = "0.03 mg/m³ (predicted)"
	case sdstypes.ToxClassIVery:
		exp.TWA = "0.1 mg/m³ (predicted)"
		exp.STEL = "0.3 mg/m³ (predicted)"
	case sdstypes.ToxClassII:
		exp.TWA = "1 mg/m³ (predicted)"
		exp.STEL = "3 mg/m³ (predicted)"
	case sdstypes.ToxClassIII:
		exp.TWA = "10 mg/m³ (predicted)"
		exp.STEL = "20 mg/m³ (predicted)"
	default:
		exp.TWA = "Not established"
		exp.STEL = "Not established"
	}

	switch {
	case tox.Class == sdstypes.ToxClassIExtreme || tox.Class == sdstypes.ToxClassIVery:
		exp.EngineeringControls = "Use in enclosed system or under local exhaust ventilation. Avoid dust formation."
	case tox.Class == sdstypes.ToxClassII || tox.Class == sdstypes.ToxClassIII:
		exp.EngineeringControls = "Local exhaust ventilation or fume hood recommended."
	default:
		exp.EngineeringControls = "Good general ventilation should be sufficient."
	}
	return exp
}

func classifyTransport(alerts []ReactivityAlert, flammable bool) Transport {
	switch {
	case hasCategory(alerts, sdstypes.HazardExplosive):
		return Transport{
			HazardClass:  "Class 1 (Explosives)",
			PackingGroup: "I, II, or III (depends on explosive type)",
			ShippingName: "EXPLOSIVE SUBSTANCE, N.O.S.",
			UNNumber:     "UN0357",
		}
	case hasCategory(alerts, sdstypes.HazardCorrosive):
		return Transport{
			HazardClass:  "Class 8 (Corrosive)",
			PackingGroup: "II or III (depends on corrosivity)",
			ShippingName: "CORROSIVE SOLID, N.O.S.",
			UNNumber:     "UN1759",
		}
	case flammable:
		return Transport{
			HazardClass:  "Class 3 (Flammable Liquid)",
			PackingGroup: "III",
			ShippingName: "FLAMMABLE LIQUID, N.O.S.",
			UNNumber:     "UN1993",
		}
	default:
		return Transport{
			HazardClass:  "Not classified as dangerous goods (predicted)",
			PackingGroup: "Not applicable",
			ShippingName: "Research chemical",
			UNNumber:     "Not regulated",
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Stability and reactivity summaries
// ─────────────────────────────────────────────────────────────────────────────

// StabilitySummary renders the condensed stability statement used in the
// stability/reactivity section.
func (a *Assessment) StabilitySummary() string {
	if hasCategory(a.Alerts, sdstypes.HazardUnstable) || hasCategory(a.Alerts, sdstypes.HazardExplosive) {
		return "Unstable – may decompose under heat, light, or shock"
	}
	return "Stable under normal conditions"
}

// ReactivitySummary joins the alert descriptions, or the all-clear phrase.
func (a *Assessment) ReactivitySummary() string {
	if len(a.Alerts) == 0 {
		return "No highly reactive groups detected"
	}
	descs := make([]string, len(a.Alerts))
	for i, alert := range a.Alerts {
		descs[i] = alert.Description
	}
	return strings.Join(descs, "; ")
}

// ConditionsToAvoid derives storage conditions from the alert categories.
func (a *Assessment) ConditionsToAvoid() string {
	var conditions []string
	if hasCategory(a.Alerts, sdstypes.HazardUnstable) || hasCategory(a.Alerts, sdstypes.HazardExplosive) {
		conditions = append(conditions, "Heat, light, friction, shock")
	}
	if hasCategory(a.Alerts, sdstypes.HazardReactive) || hasCategory(a.Alerts, sdstypes.HazardPyrophoric) {
		conditions = append(conditions, "Moisture, air exposure")
	}
	if hasCategory(a.Alerts, sdstypes.HazardPolymerizable) {
		conditions = append(conditions, "Heat, light, radical initiators")
	}
	if len(conditions) == 0 {
		return "Extreme temperatures, ignition sources"
	}
	return strings.Join(conditions, ", ")
}

// IncompatibleMaterials deduplicates and sorts the per-alert incompatibility
// lists into one statement.
func (a *Assessment) IncompatibleMaterials() string {
	if len(a.Alerts) == 0 {
		return "Strong oxidizing agents, strong acids, strong bases"
	}
	set := map[string]bool{}
	for _, alert := range a.Alerts {
		for _, item := range strings.Split(alert.Incompatibility, ", ") {
			set[item] = true
		}
	}
	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}
	sort.Strings(items)
	return strings.Join(items, ", ")
}

// DecompositionProducts predicts hazardous decomposition species from the
// functional groups present.
func (a *Assessment) DecompositionProducts() string {
	set := map[string]bool{}
	for _, alert := range a.Alerts {
		desc := strings.ToLower(alert.Description)
		if strings.Contains(desc, "nitro") || strings.Contains(desc, "nitrate") {
			set["Nitrogen oxides (NOx, toxic fumes)"] = true
		}
		if strings.Contains(desc, "peroxide") {
			set["Oxygen gas, free radicals"] = true
		}
		if strings.Contains(desc, "acid") {
			set["Carbon monoxide, carbon dioxide"] = true
		}
		if strings.Contains(desc, "halide") {
			set["Hydrogen halides (corrosive gases)"] = true
		}
		if strings.Contains(desc, "sulfonic") || strings.Contains(desc, "disulfide") {
			set["Sulfur oxides (SOx)"] = true
		}
	}
	if len(set) == 0 {
		return "Carbon monoxide, carbon dioxide"
	}
	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}
	sort.Strings(items)
	return strings.Join(items, ", ")
}

// PolymerizationRisk renders the hazardous polymerization statement.
func (a *Assessment) PolymerizationRisk() string {
	if hasCategory(a.Alerts, sdstypes.HazardPolymerizable) {
		return "May polymerize exothermically if contaminated or heated"
	}
	return "Will not occur under normal conditions"
}

//Personal.AI order the ending
