package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/billsplitter/internal/models"
)

// ErrMalformedResponse means the model answered, but not with {"items": [...]}.
var ErrMalformedResponse = errors.New("malformed extraction response")

type rawItem struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// ParseCandidates validates and decodes a model response of the form
// {"items": [{"name": string, "price": number}, ...]}. A missing or non-list
// items field, or an entry without a name or numeric price, is malformed.
func ParseCandidates(content string) ([]models.Candidate, error) {
	content = stripCodeFence(content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var envelope struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	items := bytes.TrimSpace(envelope.Items)
	if len(items) == 0 || bytes.Equal(items, []byte("null")) {
		return nil, fmt.Errorf("%w: items field is missing", ErrMalformedResponse)
	}
	if items[0] != '[' {
		return nil, fmt.Errorf("%w: items field is not a list", ErrMalformedResponse)
	}

	var raw []rawItem
	if err := json.Unmarshal(items, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	candidates := make([]models.Candidate, 0, len(raw))
	for i, item := range raw {
		if item.Name == nil || item.Price == nil {
			return nil, fmt.Errorf("%w: item %d needs a name and a price", ErrMalformedResponse, i)
		}
		candidates = append(candidates, models.Candidate{
			Name:  strings.TrimSpace(*item.Name),
			Price: *item.Price,
		})
	}
	return candidates, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence, which some models
// add even when asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
