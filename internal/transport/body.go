package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
)

// Body is a request payload that knows how to encode itself. The payload is
// encoded once and the resulting bytes are re-sent verbatim on every retry
// attempt.
type Body interface {
	encode() (payload []byte, contentType string, err error)
}

// JSON wraps v as an application/json request body.
func JSON(v any) Body { return jsonBody{v: v} }

type jsonBody struct{ v any }

func (b jsonBody) encode() ([]byte, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("could not marshal request payload: %w", err)
	}
	return data, "application/json", nil
}

// FormFile is one file part of a multipart form.
type FormFile struct {
	Field string
	Name  string
	Data  []byte
}

// Form is a multipart/form-data request body, used for chat queries that
// carry file attachments.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

func (f Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range f.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("could not write form field %q: %w", name, err)
		}
	}
	for _, file := range f.Files {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("could not create form file %q: %w", file.Name, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("could not write form file %q: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("could not finalize form body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
