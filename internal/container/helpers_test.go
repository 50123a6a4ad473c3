package container

import (
	"bytes"

	"github.com/rayslava/camt053/internal/codec"
	"github.com/rayslava/camt053/internal/models"
)

func marshalWith(doc *models.Document, opts []codec.EncodeOption) (string, error) {
	var buf bytes.Buffer
	if err := codec.NewEncoder(&buf, opts...).Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
