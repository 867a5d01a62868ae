// internal/sink/elasticsearch.go
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"zepto-scraper/internal/common/database"
	stderrors "zepto-scraper/internal/common/errors"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/product"
)

// ElasticsearchSink indexes records for search and dashboards. The
// document id is deterministic over (sku, pincode, source_date) so reruns
// overwrite rather than accumulate.
type ElasticsearchSink struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewElasticsearchSink(es *database.ElasticsearchClient, index string, log logger.Logger) *ElasticsearchSink {
	return &ElasticsearchSink{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"sink": "elasticsearch"}),
	}
}

func (s *ElasticsearchSink) Name() string { return "elasticsearch" }

func (s *ElasticsearchSink) Write(ctx context.Context, rec *product.ProductRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return stderrors.NewSinkWriteFailedError(s.Name(), err)
	}

	docID := fmt.Sprintf("%s-%s-%s", rec.SKU, rec.Pincode, rec.SourceDate)

	res, err := s.es.Client.Index(
		s.index,
		bytes.NewReader(body),
		s.es.Client.Index.WithContext(ctx),
		s.es.Client.Index.WithDocumentID(docID),
	)
	if err != nil {
		s.logger.WithError(err).Error("index request failed", map[string]interface{}{"sku": rec.SKU})
		return stderrors.NewSinkWriteFailedError(s.Name(), err)
	}
	defer res.Body.Close()

	if res.IsError() {
		err := fmt.Errorf("index returned %s", res.Status())
		s.logger.WithError(err).Error("index request rejected", map[string]interface{}{"sku": rec.SKU})
		return stderrors.NewSinkWriteFailedError(s.Name(), err)
	}

	s.logger.Debug("record indexed", map[string]interface{}{"docId": docID})
	return nil
}
