package analyzer

import (
	"fmt"

	"google.golang.org/genai"
)

// Encoding selects how media travels to the model.
type Encoding string

const (
	// EncodingInline embeds the bytes in the request.
	EncodingInline Encoding = "inline"
	// EncodingReference passes a URI the model fetches itself.
	EncodingReference Encoding = "reference"
)

// ParseEncoding maps a config value to an Encoding. Unknown values fall back
// to inline.
func ParseEncoding(s string) Encoding {
	if Encoding(s) == EncodingReference {
		return EncodingReference
	}
	return EncodingInline
}

func (e Encoding) mediaPart(ref MediaRef, mimeType string) (*genai.Part, error) {
	switch e {
	case EncodingReference:
		if ref.URI == "" {
			return nil, fmt.Errorf("%w: reference encoding needs a URI", ErrNoMedia)
		}
		return &genai.Part{FileData: &genai.FileData{FileURI: ref.URI, MIMEType: mimeType}}, nil
	default:
		if len(ref.Data) == 0 {
			return nil, fmt.Errorf("%w: inline encoding needs data", ErrNoMedia)
		}
		return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: ref.Data}}, nil
	}
}
