package api

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

var queryEncoder = schema.NewEncoder()

// EncodeQuery encodes a params struct (schema tags) into URL values.
// A nil src yields an empty set.
func EncodeQuery(src any) (url.Values, error) {
	q := url.Values{}
	if src == nil {
		return q, nil
	}
	if err := queryEncoder.Encode(src, q); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return q, nil
}

// FlattenQuery merges a nested query object into its parent's parameters.
//
// Precedence, lowest first: top-level keys, then every key present in nested,
// which replaces the top-level key of the same name wholesale. Keys absent from
// nested (omitted zero values) leave the top-level value alone. containerKey
// itself never survives the merge. Neither input is modified.
func FlattenQuery(top, nested url.Values, containerKey string) url.Values {
	out := make(url.Values, len(top)+len(nested))
	for k, vs := range top {
		out[k] = append([]string(nil), vs...)
	}
	if containerKey != "" {
		out.Del(containerKey)
	}
	for k, vs := range nested {
		if k == containerKey {
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	return out
}
