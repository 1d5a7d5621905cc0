package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

type serviceStub struct {
	generateErr error
	exportErr   error
	historyErr  error
	records     []sdstypes.DocumentRecord
}

func (s *serviceStub) buildDocument(smiles string) (*sheet.Document, error) {
	resolver := identity.NewResolver(logging.NewNopLogger())
	id, err := resolver.Resolve(smiles)
	if err != nil {
		return nil, err
	}
	sections := make([]*sheet.Section, 0, sheet.SectionCount)
	for n := 1; n <= sheet.SectionCount; n++ {
		section, err := sheet.NewSection(n)
		if err != nil {
			return nil, err
		}
		section.AddText("Product Identifier", id.Name, sdstypes.SourceComputed)
		sections = append(sections, section)
	}
	return sheet.NewDocument(id, sections)
}

func (s *serviceStub) Generate(_ context.Context, input sdsapp.GenerateInput) (*sheet.Document, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return s.buildDocument(input.SMILES)
}

func (s *serviceStub) GenerateSection(_ context.Context, input sdsapp.SectionInput) (sdstypes.SectionView, error) {
	title, err := sheet.TitleFor(input.Section)
	if err != nil {
		return sdstypes.SectionView{}, err
	}
	doc, err := s.buildDocument(input.SMILES)
	if err != nil {
		return sdstypes.SectionView{}, err
	}
	section, err := doc.Section(input.Section)
	if err != nil {
		return sdstypes.SectionView{}, err
	}
	view := section.View()
	view.Title = title
	return view, nil
}

func (s *serviceStub) Export(_ context.Context, input sdsapp.ExportInput) (*sdsapp.ExportResult, error) {
	if s.exportErr != nil {
		return nil, s.exportErr
	}
	if input.Format != sdstypes.FormatJSON {
		return nil, errors.New(errors.ErrCodeInputInvalidFormat, "Unsupported document format")
	}
	return &sdsapp.ExportResult{
		Data:        []byte(`{"ok":true}`),
		ContentType: "application/json",
		Filename:    "SDS_C2H6O.json",
	}, nil
}

func (s *serviceStub) Catalog() []sdstypes.CatalogEntry {
	return sheet.Catalog()
}

func (s *serviceStub) History(_ context.Context, limit int) ([]sdstypes.DocumentRecord, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	if limit < len(s.records) {
		return s.records[:limit], nil
	}
	return s.records, nil
}

type cacheStub struct {
	mu     sync.Mutex
	views  map[string]sdstypes.DocumentView
	getErr error
}

func newCacheStub() *cacheStub {
	return &cacheStub{views: make(map[string]sdstypes.DocumentView)}
}

func (c *cacheStub) cacheKey(smiles string, fetch bool) string {
	if fetch {
		return smiles + ":fetched"
	}
	return smiles + ":computed"
}

func (c *cacheStub) Get(_ context.Context, smiles string, fetch bool) (*sdstypes.DocumentView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	view, ok := c.views[c.cacheKey(smiles, fetch)]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "cache miss")
	}
	return &view, nil
}

func (c *cacheStub) Put(_ context.Context, smiles string, fetch bool, view sdstypes.DocumentView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[c.cacheKey(smiles, fetch)] = view
	return nil
}

type finderStub struct {
	records map[common.ID]sdstypes.DocumentRecord
}

func (f *finderStub) GetByID(_ context.Context, id common.ID) (sdstypes.DocumentRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return sdstypes.DocumentRecord{}, errors.New(errors.ErrCodeDocumentNotFound, "Document not found")
	}
	return rec, nil
}

type signerStub struct {
	gotKey    string
	gotID     string
	gotFormat sdstypes.DocumentFormat
	err       error
}

func (s *signerStub) DownloadURL(_ context.Context, structureKey, documentID string, format sdstypes.DocumentFormat) (string, error) {
	s.gotKey = structureKey
	s.gotID = documentID
	s.gotFormat = format
	if s.err != nil {
		return "", s.err
	}
	return "https://storage.example.com/" + structureKey + "/" + documentID + "." + string(format), nil
}

func newTestRouter(h *SDSHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/sds", func(api chi.Router) {
		api.Post("/generate", h.Generate)
		api.Get("/catalog", h.Catalog)
		api.Get("/sections/{number}", h.Section)
		api.Get("/export/{format}", h.Export)
		api.Get("/documents", h.Documents)
		api.Get("/documents/{id}", h.Document)
		api.Get("/documents/{id}/download", h.DocumentDownload)
	})
	return r
}

func TestSDSHandler_Generate(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sds/generate",
		strings.NewReader(`{"smiles":"CCO"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var view sdstypes.DocumentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "C2H6O", view.Identity.Formula)
	assert.Len(t, view.Sections, 16)
}

func TestSDSHandler_Generate_BadBody(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sds/generate",
		strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "COMMON_002")
}

func TestSDSHandler_Generate_InvalidSMILES(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{
		generateErr: errors.New(errors.ErrCodeInputInvalidSMILES, "Invalid SMILES format"),
	}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sds/generate",
		strings.NewReader(`{"smiles":"C((C"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INPUT_002")
}

func TestSDSHandler_Generate_InternalErrorMasked(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{
		generateErr: errors.New(errors.ErrCodeInternal, "connection refused to 10.1.2.3"),
	}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sds/generate",
		strings.NewReader(`{"smiles":"CCO"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.1.2.3")
}

func TestSDSHandler_Generate_CacheHitSkipsService(t *testing.T) {
	cache := newCacheStub()
	cached := sdstypes.DocumentView{ID: common.ID("cached-doc")}
	require.NoError(t, cache.Put(context.Background(), "CCO", false, cached))

	handler := NewSDSHandler(&serviceStub{
		generateErr: errors.New(errors.ErrCodeInternal, "service must not be called"),
	}, cache, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sds/generate",
		strings.NewReader(`{"smiles":"CCO"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cached-doc")
}

func TestSDSHandler_Generate_CacheMissPopulates(t *testing.T) {
	cache := newCacheStub()
	handler := NewSDSHandler(&serviceStub{}, cache, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sds/generate",
		strings.NewReader(`{"smiles":"CCO","fetch":true}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	_, ok := cache.views["CCO:fetched"]
	assert.True(t, ok)
}

func TestSDSHandler_Section(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/sections/9?smiles=CCO", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var view sdstypes.SectionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 9, view.Number)
	assert.Equal(t, "Physical and Chemical Properties", view.Title)
}

func TestSDSHandler_Section_NotAnInteger(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/sections/nine?smiles=CCO", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INPUT_003")
}

func TestSDSHandler_Export(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/export/json?smiles=CCO", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="SDS_C2H6O.json"`, w.Header().Get("Content-Disposition"))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestSDSHandler_Export_UnsupportedFormat(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/export/docx?smiles=CCO", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INPUT_004")
}

func TestSDSHandler_Catalog(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []sdstypes.CatalogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 16)
	assert.Equal(t, 1, entries[0].Number)
}

func TestSDSHandler_Documents(t *testing.T) {
	records := []sdstypes.DocumentRecord{
		{ID: common.ID("doc-1"), Formula: "C2H6O"},
		{ID: common.ID("doc-2"), Formula: "C6H6"},
	}
	handler := NewSDSHandler(&serviceStub{records: records}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []sdstypes.DocumentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, common.ID("doc-1"), got[0].ID)
}

func TestSDSHandler_Document(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	handler.AttachDocumentStore(&finderStub{records: map[common.ID]sdstypes.DocumentRecord{
		"doc-1": {ID: common.ID("doc-1"), StructureKey: "sk-ethanol", Formula: "C2H6O"},
	}}, nil)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents/doc-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var rec sdstypes.DocumentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, common.ID("doc-1"), rec.ID)
	assert.Equal(t, "C2H6O", rec.Formula)
}

func TestSDSHandler_Document_NotFound(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	handler.AttachDocumentStore(&finderStub{records: nil}, nil)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents/doc-missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "DOC_003")
}

func TestSDSHandler_Document_StoreNotConfigured(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents/doc-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSDSHandler_DocumentDownload(t *testing.T) {
	signer := &signerStub{}
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	handler.AttachDocumentStore(&finderStub{records: map[common.ID]sdstypes.DocumentRecord{
		"doc-1": {ID: common.ID("doc-1"), StructureKey: "sk-ethanol"},
	}}, signer)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents/doc-1/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["url"], "sk-ethanol/doc-1.pdf")
	assert.Equal(t, "pdf", resp["format"])
	assert.Equal(t, "sk-ethanol", signer.gotKey)
	assert.Equal(t, sdstypes.FormatPDF, signer.gotFormat)
}

func TestSDSHandler_DocumentDownload_JSONFormat(t *testing.T) {
	signer := &signerStub{}
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	handler.AttachDocumentStore(&finderStub{records: map[common.ID]sdstypes.DocumentRecord{
		"doc-1": {ID: common.ID("doc-1"), StructureKey: "sk-ethanol"},
	}}, signer)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents/doc-1/download?format=json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sdstypes.FormatJSON, signer.gotFormat)
}

func TestSDSHandler_DocumentDownload_UnsupportedFormat(t *testing.T) {
	handler := NewSDSHandler(&serviceStub{}, nil, nil, logging.NewNopLogger())
	handler.AttachDocumentStore(&finderStub{}, &signerStub{})
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sds/documents/doc-1/download?format=docx", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INPUT_004")
}

//Personal.AI order the ending
