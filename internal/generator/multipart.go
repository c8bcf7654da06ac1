package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

// Multipart field names of the generation service's /generate endpoint.
const (
	fieldDescription = "description"
	fieldCoordsJSON  = "coords_json"
	fieldExcelFile   = "excel_file"
	fieldPDFFile     = "pdf_file"
)

// EncodeMultipart renders a payload as a multipart/form-data body.
// description is always written (empty allowed); exactly one of excel_file
// and coords_json follows, depending on the payload's source; pdf_file is
// written only when a reference document was chosen.
func EncodeMultipart(p domain.SubmissionPayload) (body *bytes.Buffer, contentType string, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if err := w.WriteField(fieldDescription, p.Description); err != nil {
		return nil, "", fmt.Errorf("encode description: %w", err)
	}

	switch src := p.Source.(type) {
	case domain.UploadedSpreadsheet:
		if err := writeFilePart(w, fieldExcelFile, src.File); err != nil {
			return nil, "", err
		}
	case domain.ManualCoordinates:
		coords, err := json.Marshal([][2]float64(src))
		if err != nil {
			return nil, "", fmt.Errorf("encode coordinates: %w", err)
		}
		if err := w.WriteField(fieldCoordsJSON, string(coords)); err != nil {
			return nil, "", fmt.Errorf("encode coordinates: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("encode payload: missing coordinate source")
	}

	if p.ReferenceDocument != nil {
		if err := writeFilePart(w, fieldPDFFile, p.ReferenceDocument); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize payload: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, field string, f *domain.FileAttachment) error {
	part, err := w.CreateFormFile(field, f.Name)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	return nil
}
