package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	entity "wms.GO/model/entity"
	productRepo "wms.GO/model/repository/product"
)

// Service resolves product name/code searches through Elasticsearch when
// configured, falling back to a SQL LIKE query otherwise.
type Service struct {
	client   *elasticsearch.Client
	index    string
	products *productRepo.ProductRepository
}

func NewService(db *gorm.DB) *Service {
	s := &Service{products: productRepo.NewProductRepository(db)}

	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return s // SQL fallback only
	}
	prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX")
	if prefix == "" {
		prefix = "wms"
	}
	s.index = prefix + "_product"

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return s
	}
	s.client = client
	return s
}

// SearchProducts returns products matching term by name or code.
func (s *Service) SearchProducts(term string, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if s.client == nil {
		return s.products.SearchByNameOrCode(term, limit)
	}
	ids, err := s.searchES(term, limit)
	if err != nil || len(ids) == 0 {
		// ES unreachable or empty: the database is the source of truth.
		return s.products.SearchByNameOrCode(term, limit)
	}
	byID, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) searchES(term string, limit int) ([]uint, error) {
	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  term,
				"fields": []string{"name^2", "code"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ProductID uint `json:"product_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ProductID)
	}
	return ids, nil
}
