package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemSDS/pkg/errors"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

const historyLimitMax = 200

// DocumentCache is the read-through cache for generated document views.
type DocumentCache interface {
	Get(ctx context.Context, smiles string, fetch bool) (*sdstypes.DocumentView, error)
	Put(ctx context.Context, smiles string, fetch bool, view sdstypes.DocumentView) error
}

// DocumentFinder resolves a generation record by document ID.
type DocumentFinder interface {
	GetByID(ctx context.Context, id common.ID) (sdstypes.DocumentRecord, error)
}

// ExportSigner issues time-limited download URLs for archived exports.
type ExportSigner interface {
	DownloadURL(ctx context.Context, structureKey, documentID string, format sdstypes.DocumentFormat) (string, error)
}

// SDSHandler serves the generation, section, export and history routes.
// Cache and metrics are optional; a nil value disables the concern.
type SDSHandler struct {
	service sdsapp.Service
	cache   DocumentCache
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	finder  DocumentFinder
	signer  ExportSigner
}

func NewSDSHandler(service sdsapp.Service, cache DocumentCache, metrics *prometheus.AppMetrics, logger logging.Logger) *SDSHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SDSHandler{service: service, cache: cache, metrics: metrics, logger: logger}
}

// AttachDocumentStore enables the by-ID and download routes.  Either
// dependency may be nil; the corresponding route then reports the
// feature as unavailable.
func (h *SDSHandler) AttachDocumentStore(finder DocumentFinder, signer ExportSigner) {
	h.finder = finder
	h.signer = signer
}

// Generate handles POST /api/v1/sds/generate.
func (h *SDSHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req sdstypes.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	if h.cache != nil {
		if view, err := h.cache.Get(r.Context(), req.SMILES, req.Fetch); err == nil && view != nil {
			h.recordCache(true)
			writeJSON(w, http.StatusOK, view)
			return
		}
		h.recordCache(false)
	}

	start := time.Now()
	doc, err := h.service.Generate(r.Context(), sdsapp.GenerateInput{
		SMILES: req.SMILES,
		Fetch:  req.Fetch,
	})
	if h.metrics != nil {
		prometheus.RecordGeneration(h.metrics, req.Fetch, err, time.Since(start))
	}
	if err != nil {
		writeError(w, err)
		return
	}

	view := doc.View()
	if h.cache != nil {
		if err := h.cache.Put(r.Context(), req.SMILES, req.Fetch, view); err != nil {
			h.logger.Warn("Failed to cache document", logging.Err(err))
		}
	}
	writeJSON(w, http.StatusOK, view)
}

// Section handles GET /api/v1/sds/sections/{number}.
func (h *SDSHandler) Section(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInputInvalidSection, "Section number must be an integer"))
		return
	}
	if h.metrics != nil {
		prometheus.RecordSectionRequest(h.metrics, number)
	}

	view, err := h.service.GenerateSection(r.Context(), sdsapp.SectionInput{
		SMILES:  r.URL.Query().Get("smiles"),
		Section: number,
		Fetch:   parseBool(r, "fetch"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Export handles GET /api/v1/sds/export/{format}.
func (h *SDSHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	result, err := h.service.Export(r.Context(), sdsapp.ExportInput{
		SMILES: r.URL.Query().Get("smiles"),
		Format: sdstypes.DocumentFormat(format),
		Fetch:  parseBool(r, "fetch"),
	})
	if h.metrics != nil {
		prometheus.RecordExport(h.metrics, format, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

// Catalog handles GET /api/v1/sds/catalog.
func (h *SDSHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Catalog())
}

// Documents handles GET /api/v1/sds/documents.
func (h *SDSHandler) Documents(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), parseLimit(r, 50, historyLimitMax))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Document handles GET /api/v1/sds/documents/{id}.
func (h *SDSHandler) Document(w http.ResponseWriter, r *http.Request) {
	if h.finder == nil {
		writeError(w, errors.New(errors.ErrCodeServiceUnavailable, "Document history is not configured"))
		return
	}
	rec, err := h.finder.GetByID(r.Context(), common.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DocumentDownload handles GET /api/v1/sds/documents/{id}/download.
// The response carries a presigned object-store URL rather than the
// payload itself so large exports never stream through the API server.
func (h *SDSHandler) DocumentDownload(w http.ResponseWriter, r *http.Request) {
	if h.finder == nil || h.signer == nil {
		writeError(w, errors.New(errors.ErrCodeServiceUnavailable, "Document archive is not configured"))
		return
	}

	format := sdstypes.DocumentFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = sdstypes.FormatPDF
	}
	if format != sdstypes.FormatJSON && format != sdstypes.FormatPDF {
		writeError(w, errors.Newf(errors.ErrCodeInputInvalidFormat,
			"unsupported format %q; expected json or pdf", string(format)))
		return
	}

	rec, err := h.finder.GetByID(r.Context(), common.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := h.signer.DownloadURL(r.Context(), rec.StructureKey, string(rec.ID), format)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"url":    url,
		"format": string(format),
	})
}

func (h *SDSHandler) recordCache(hit bool) {
	if h.metrics != nil {
		prometheus.RecordCacheAccess(h.metrics, "document", hit)
	}
}

//Personal.AI order the ending
