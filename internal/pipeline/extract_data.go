package pipeline

import (
	"context"

	"identity-ocr/internal/data"
	"identity-ocr/internal/logger"
)

func (p *Pipeline) extractData(ctx context.Context, path, text string, docType data.DocumentType) (data.Record, data.Fields) {
	log := logger.FromContext(ctx)
	fields := p.clients.extractor.Extract(text)

	log.Debug().
		Str("file", path).
		Str("document_type", string(docType)).
		Str("number_kind", fields.NumberKind).
		Strs("found", fields.Found()).
		Msg("[extractData]: extracted fields")

	return fields.Record(docType), fields
}
