package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/pkg/apperr"
)

// Indexer mirrors profiles into Elasticsearch for user search. Indexing
// is best effort: failures are logged and never surface to the caller.
// A nil Indexer is a no-op.
type Indexer struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

// Index writes the latest profile document.
func (ix *Indexer) Index(ctx context.Context, p *entity.Profile) {
	if ix == nil || ix.ES == nil || ix.IndexName == "" {
		return
	}
	doc := map[string]any{
		"username": p.Username,
		"email":    p.Email,
		"headline": p.Headline,
		"avatar":   p.Avatar,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: ix.IndexName, DocumentID: p.Username, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		if ix.Logger != nil {
			ix.Logger.WithError(err).WithField("username", p.Username).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && ix.Logger != nil {
		ix.Logger.WithField("status", res.Status()).WithField("username", p.Username).Warn("es index response error")
	}
}

// Search runs a multi_match over username, email and headline.
func (ix *Indexer) Search(ctx context.Context, q string, size int) ([]entity.Summary, error) {
	if ix == nil || ix.ES == nil || ix.IndexName == "" {
		return []entity.Summary{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email", "headline"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(c),
		ix.ES.Search.WithIndex(ix.IndexName),
		ix.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "search failed", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Summary `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "search decode failed", err)
	}

	out := make([]entity.Summary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
