package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
)

// UsersIndexMapping is the mapping used when the users index is created.
const UsersIndexMapping = `{
  "mappings": {
    "properties": {
      "id":      {"type": "long"},
      "name":    {"type": "text"},
      "email":   {"type": "keyword"},
      "phone":   {"type": "keyword"},
      "address": {"type": "text"}
    }
  }
}`

type userDocument struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *UserService) searchEnabled() bool {
	return s.ES != nil && s.ESUsersIndex != ""
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if !s.searchEnabled() {
		return nil
	}
	doc := userDocument{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Address: u.Address}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      s.ESUsersIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *UserService) unindexUser(ctx context.Context, id int64) error {
	if !s.searchEnabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: strconv.FormatInt(id, 10)}.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

const (
	DefaultSearchSize = 10
	MaxSearchSize     = 50
)

// Search performs a multi_match search on name, email and phone. A size
// outside 1..MaxSearchSize falls back to the default or is capped.
// It returns an empty result when search is not configured.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]PublicUser, error) {
	if !s.searchEnabled() || strings.TrimSpace(q) == "" {
		return []PublicUser{}, nil
	}
	switch {
	case size <= 0:
		size = DefaultSearchSize
	case size > MaxSearchSize:
		size = MaxSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name", "phone"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.ESUsersIndex, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]PublicUser, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, PublicUser{ID: d.ID, Name: d.Name, Phone: d.Phone, Email: d.Email, Address: d.Address, SessionActive: true})
	}
	return out, nil
}
