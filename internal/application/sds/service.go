package sds

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/ChemSDS/internal/domain/hazard"
	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// ─────────────────────────────────────────────────────────────────────────────
// Service interface
// ─────────────────────────────────────────────────────────────────────────────

// Service exposes SDS generation to the transport layer.
type Service interface {
	// Generate runs the full pipeline for one SMILES input and returns the
	// assembled 16-section document.
	Generate(ctx context.Context, input GenerateInput) (*sheet.Document, error)

	// GenerateSection generates the document and projects out a single
	// section. The section content is identical to the corresponding
	// section of a full Generate call with the same input.
	GenerateSection(ctx context.Context, input SectionInput) (sdstypes.SectionView, error)

	// Export generates the document and renders it in the requested format.
	Export(ctx context.Context, input ExportInput) (*ExportResult, error)

	// Catalog returns the fixed 16-section table of contents.
	Catalog() []sdstypes.CatalogEntry

	// History lists previously generated documents, newest first.
	History(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error)
}

// GenerateInput carries one generation request.
type GenerateInput struct {
	SMILES string
	// Fetch enables external lookups. When false only the computed
	// source runs and fetched-only fields degrade to unavailable.
	Fetch bool
}

// SectionInput asks for a single section of a generated document.
type SectionInput struct {
	SMILES  string
	Section int
	Fetch   bool
}

// ExportInput asks for a rendered document in one encoding.
type ExportInput struct {
	SMILES string
	Format sdstypes.DocumentFormat
	Fetch  bool
}

// ExportResult is a rendered document ready for download.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Renderer encodes a finished document for download.
type Renderer interface {
	Render(doc *sheet.Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// HistoryRepository persists generation-history rows. Implementations live
// in the infrastructure layer; a nil repository disables history.
type HistoryRepository interface {
	Save(ctx context.Context, rec sdstypes.DocumentRecord) error
	List(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error)
}

// EventPublisher emits a generation event after each successful document.
// A nil publisher disables events.
type EventPublisher interface {
	PublishGenerated(ctx context.Context, rec sdstypes.DocumentRecord) error
}

// ─────────────────────────────────────────────────────────────────────────────
// Service implementation
// ─────────────────────────────────────────────────────────────────────────────

type service struct {
	resolver    *identity.Resolver
	engine      *hazard.Engine
	withFetch   *property.Adapter
	computeOnly *property.Adapter
	renderers   map[sdstypes.DocumentFormat]Renderer
	history     HistoryRepository
	events      EventPublisher
	logger      logging.Logger
}

// Config wires the service's collaborators. ComputedSource is required;
// everything else is optional and degrades gracefully when absent.
type Config struct {
	Computed  property.ComputedSource
	Fetched   property.FetchedSource
	Renderers map[sdstypes.DocumentFormat]Renderer
	History   HistoryRepository
	Events    EventPublisher
	Logger    logging.Logger
	Options   []property.AdapterOption
}

// NewService builds the application service.
func NewService(cfg Config) Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &service{
		resolver:    identity.NewResolver(logger),
		engine:      hazard.NewEngine(logger),
		withFetch:   property.NewAdapter(cfg.Computed, cfg.Fetched, logger, cfg.Options...),
		computeOnly: property.NewAdapter(cfg.Computed, nil, logger, cfg.Options...),
		renderers:   cfg.Renderers,
		history:     cfg.History,
		events:      cfg.Events,
		logger:      logger,
	}
}

func (s *service) Generate(ctx context.Context, input GenerateInput) (*sheet.Document, error) {
	start := time.Now()

	id, err := s.resolver.Resolve(input.SMILES)
	if err != nil {
		return nil, err
	}

	adapter := s.computeOnly
	if input.Fetch {
		adapter = s.withFetch
	}
	record := adapter.Gather(ctx, id, sdstypes.AllPropertyKeys)

	id = s.enrichNames(id, record)

	assessment, err := s.engine.Classify(id)
	if err != nil {
		return nil, err
	}

	asm := &assembler{
		id:      id,
		record:  record,
		hazards: assessment,
		date:    time.Now().UTC().Format("2006-01-02"),
	}
	doc, err := sheet.NewDocument(id, asm.assemble())
	if err != nil {
		return nil, err
	}

	s.logger.Info("SDS document generated",
		logging.String("structure_key", id.StructureKey),
		logging.String("formula", id.Formula),
		logging.Bool("fetch", input.Fetch),
		logging.Bool("complete", doc.Complete()),
		logging.Int("available_properties", record.AvailableCount()),
		logging.Duration("elapsed", time.Since(start)))

	s.recordHistory(ctx, doc)
	return doc, nil
}

func (s *service) GenerateSection(ctx context.Context, input SectionInput) (sdstypes.SectionView, error) {
	if _, err := sheet.TitleFor(input.Section); err != nil {
		return sdstypes.SectionView{}, err
	}
	doc, err := s.Generate(ctx, GenerateInput{SMILES: input.SMILES, Fetch: input.Fetch})
	if err != nil {
		return sdstypes.SectionView{}, err
	}
	section, err := doc.Section(input.Section)
	if err != nil {
		return sdstypes.SectionView{}, err
	}
	return section.View(), nil
}

func (s *service) Export(ctx context.Context, input ExportInput) (*ExportResult, error) {
	renderer, ok := s.renderers[input.Format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInputInvalidFormat,
			"Unsupported document format").WithDetail("format=" + string(input.Format))
	}
	doc, err := s.Generate(ctx, GenerateInput{SMILES: input.SMILES, Fetch: input.Fetch})
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDocumentRenderFailed,
			"Failed to render document")
	}
	return &ExportResult{
		Data:        data,
		ContentType: renderer.ContentType(),
		Filename:    "SDS_" + doc.Identity.Formula + "." + renderer.FileExtension(),
	}, nil
}

func (s *service) Catalog() []sdstypes.CatalogEntry {
	return sheet.Catalog()
}

func (s *service) History(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error) {
	if s.history == nil {
		return []sdstypes.DocumentRecord{}, nil
	}
	records, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError,
			"Failed to list generation history")
	}
	return records, nil
}

// enrichNames folds fetched naming data into the identity. Missing or
// compute-only data leaves the canonical-SMILES default in place.
func (s *service) enrichNames(id *identity.MoleculeIdentity, record *property.Record) *identity.MoleculeIdentity {
	common := availableValue(record, sdstypes.KeyCommonName)
	iupac := availableValue(record, sdstypes.KeyIUPACName)
	var synonyms []string
	if joined := availableValue(record, sdstypes.KeySynonyms); joined != "" {
		synonyms = strings.Split(joined, ", ")
	}
	name := identity.DisplayName(common, iupac, synonyms, id.CanonicalSMILES)
	if name == id.Name && len(synonyms) == 0 {
		return id
	}
	return id.WithNames(name, synonyms)
}

func availableValue(record *property.Record, key sdstypes.PropertyKey) string {
	if v := record.Get(key); v.IsAvailable() {
		return v.Value
	}
	return ""
}

// recordHistory persists and publishes the generation outcome. Failures are
// logged, never propagated: history is best-effort.
func (s *service) recordHistory(ctx context.Context, doc *sheet.Document) {
	rec := doc.Record()
	if s.history != nil {
		if err := s.history.Save(ctx, rec); err != nil {
			s.logger.Warn("Failed to save generation history",
				logging.String("document_id", string(rec.ID)),
				logging.Err(err))
		}
	}
	if s.events != nil {
		if err := s.events.PublishGenerated(ctx, rec); err != nil {
			s.logger.Warn("Failed to publish generation event",
				logging.String("document_id", string(rec.ID)),
				logging.Err(err))
		}
	}
}

//Personal.AI order the ending
