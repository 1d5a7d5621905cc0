package client

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"strconv"

	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

const apiBasePath = "/api/v1/sds"

// SDSClient provides access to the SDS generation endpoints.
type SDSClient struct {
	client *Client
}

// Export is a rendered document downloaded from the API.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Generate runs the full pipeline for one SMILES input and returns the
// assembled 16-section document view.
func (s *SDSClient) Generate(ctx context.Context, req sdstypes.GenerateRequest) (*sdstypes.DocumentView, error) {
	if req.SMILES == "" {
		return nil, errors.New(errors.ErrCodeInputEmptySMILES, "SMILES is required")
	}

	var view sdstypes.DocumentView
	if err := s.client.post(ctx, apiBasePath+"/generate", req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Section generates the document and returns a single section view.
func (s *SDSClient) Section(ctx context.Context, smiles string, number int, fetch bool) (*sdstypes.SectionView, error) {
	if smiles == "" {
		return nil, errors.New(errors.ErrCodeInputEmptySMILES, "SMILES is required")
	}

	q := url.Values{}
	q.Set("smiles", smiles)
	if fetch {
		q.Set("fetch", "true")
	}
	path := fmt.Sprintf("%s/sections/%d?%s", apiBasePath, number, q.Encode())

	var view sdstypes.SectionView
	if err := s.client.get(ctx, path, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Catalog returns the fixed 16-section table of contents.
func (s *SDSClient) Catalog(ctx context.Context) ([]sdstypes.CatalogEntry, error) {
	var entries []sdstypes.CatalogEntry
	if err := s.client.get(ctx, apiBasePath+"/catalog", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ExportDocument generates the document and downloads it rendered in the
// requested format.
func (s *SDSClient) ExportDocument(ctx context.Context, smiles string, format sdstypes.DocumentFormat, fetch bool) (*Export, error) {
	if smiles == "" {
		return nil, errors.New(errors.ErrCodeInputEmptySMILES, "SMILES is required")
	}

	q := url.Values{}
	q.Set("smiles", smiles)
	if fetch {
		q.Set("fetch", "true")
	}
	path := fmt.Sprintf("%s/export/%s?%s", apiBasePath, format, q.Encode())

	data, header, err := s.client.doRaw(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	exp := &Export{
		Data:        data,
		ContentType: header.Get("Content-Type"),
	}
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			exp.Filename = params["filename"]
		}
	}
	return exp, nil
}

// History lists previously generated documents, newest first. A limit of
// zero uses the server default.
func (s *SDSClient) History(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error) {
	path := apiBasePath + "/documents"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var records []sdstypes.DocumentRecord
	if err := s.client.get(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Document returns one generation record by ID.
func (s *SDSClient) Document(ctx context.Context, id string) (*sdstypes.DocumentRecord, error) {
	if id == "" {
		return nil, errors.New(errors.ErrCodeBadRequest, "document ID is required")
	}
	var rec sdstypes.DocumentRecord
	if err := s.client.get(ctx, apiBasePath+"/documents/"+url.PathEscape(id), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DocumentDownload contains a presigned URL for an archived export.
type DocumentDownload struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// DownloadURL returns a presigned download link for the archived export
// of a previously generated document.
func (s *SDSClient) DownloadURL(ctx context.Context, id string, format sdstypes.DocumentFormat) (*DocumentDownload, error) {
	if id == "" {
		return nil, errors.New(errors.ErrCodeBadRequest, "document ID is required")
	}
	path := apiBasePath + "/documents/" + url.PathEscape(id) + "/download"
	if format != "" {
		path += "?format=" + url.QueryEscape(string(format))
	}
	var dl DocumentDownload
	if err := s.client.get(ctx, path, &dl); err != nil {
		return nil, err
	}
	return &dl, nil
}

//Personal.AI order the ending
