package cli

import (
	"context"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/pkg/client"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// ExportPayload is a rendered document ready to be written to disk.
type ExportPayload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Runner abstracts where the generation pipeline executes. The local
// implementation runs the whole pipeline in-process; the remote one talks
// to an API server. Commands do not care which they got.
type Runner interface {
	Generate(ctx context.Context, smiles string, fetch bool) (*sdstypes.DocumentView, error)
	Section(ctx context.Context, smiles string, number int, fetch bool) (sdstypes.SectionView, error)
	Export(ctx context.Context, smiles string, format sdstypes.DocumentFormat, fetch bool) (*ExportPayload, error)
	Catalog(ctx context.Context) ([]sdstypes.CatalogEntry, error)
	History(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error)
}

// localRunner executes the pipeline in-process.
type localRunner struct {
	svc sdsapp.Service
}

// NewLocalRunner wraps an application service as a Runner.
func NewLocalRunner(svc sdsapp.Service) Runner {
	return &localRunner{svc: svc}
}

func (r *localRunner) Generate(ctx context.Context, smiles string, fetch bool) (*sdstypes.DocumentView, error) {
	doc, err := r.svc.Generate(ctx, sdsapp.GenerateInput{SMILES: smiles, Fetch: fetch})
	if err != nil {
		return nil, err
	}
	view := doc.View()
	return &view, nil
}

func (r *localRunner) Section(ctx context.Context, smiles string, number int, fetch bool) (sdstypes.SectionView, error) {
	return r.svc.GenerateSection(ctx, sdsapp.SectionInput{SMILES: smiles, Section: number, Fetch: fetch})
}

func (r *localRunner) Export(ctx context.Context, smiles string, format sdstypes.DocumentFormat, fetch bool) (*ExportPayload, error) {
	res, err := r.svc.Export(ctx, sdsapp.ExportInput{SMILES: smiles, Format: format, Fetch: fetch})
	if err != nil {
		return nil, err
	}
	return &ExportPayload{
		Data:        res.Data,
		ContentType: res.ContentType,
		Filename:    res.Filename,
	}, nil
}

func (r *localRunner) Catalog(ctx context.Context) ([]sdstypes.CatalogEntry, error) {
	return r.svc.Catalog(), nil
}

func (r *localRunner) History(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error) {
	return r.svc.History(ctx, limit)
}

// remoteRunner executes the pipeline through an API server.
type remoteRunner struct {
	api *client.Client
}

// NewRemoteRunner wraps an SDK client as a Runner.
func NewRemoteRunner(api *client.Client) Runner {
	return &remoteRunner{api: api}
}

func (r *remoteRunner) Generate(ctx context.Context, smiles string, fetch bool) (*sdstypes.DocumentView, error) {
	return r.api.SDS().Generate(ctx, sdstypes.GenerateRequest{SMILES: smiles, Fetch: fetch})
}

func (r *remoteRunner) Section(ctx context.Context, smiles string, number int, fetch bool) (sdstypes.SectionView, error) {
	view, err := r.api.SDS().Section(ctx, smiles, number, fetch)
	if err != nil {
		return sdstypes.SectionView{}, err
	}
	return *view, nil
}

func (r *remoteRunner) Export(ctx context.Context, smiles string, format sdstypes.DocumentFormat, fetch bool) (*ExportPayload, error) {
	exp, err := r.api.SDS().ExportDocument(ctx, smiles, format, fetch)
	if err != nil {
		return nil, err
	}
	return &ExportPayload{
		Data:        exp.Data,
		ContentType: exp.ContentType,
		Filename:    exp.Filename,
	}, nil
}

func (r *remoteRunner) Catalog(ctx context.Context) ([]sdstypes.CatalogEntry, error) {
	return r.api.SDS().Catalog(ctx)
}

func (r *remoteRunner) History(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error) {
	return r.api.SDS().History(ctx, limit)
}

//Personal.AI order the ending
