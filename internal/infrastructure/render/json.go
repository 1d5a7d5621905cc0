// Package render encodes assembled SDS documents into export formats.
package render

import (
	"encoding/json"

	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	"github.com/turtacn/ChemSDS/pkg/errors"
)

// JSONRenderer emits the document view as indented JSON. Section and
// field order follow the document, so output is stable for one input.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(doc *sheet.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "document required")
	}
	data, err := json.MarshalIndent(doc.View(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode document")
	}
	return data, nil
}

func (r *JSONRenderer) ContentType() string { return "application/json" }

func (r *JSONRenderer) FileExtension() string { return "json" }

//Personal.AI order the ending
