package ui

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"

	"battlecats-savior/bcsav"
)

// Flatten turns the record's JSON into one row per scalar, keyed by its gjson path and kept in
// the record's field order.
func Flatten(record *bcsav.Record) (*orderedmap.OrderedMap, error) {
	bs, err := bcsav.ToJSON(record, "")
	if err != nil {
		return nil, errors.Wrap(err, "ui.Flatten error")
	}
	nested := orderedmap.New()
	if err := json.Unmarshal(bs, nested); err != nil {
		return nil, errors.Wrap(err, "ui.Flatten error")
	}

	flat := orderedmap.New()
	flattenInto(flat, "", *nested)
	return flat, nil
}

func joinPath(prefix string, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func flattenInto(flat *orderedmap.OrderedMap, prefix string, value any) {
	switch v := value.(type) {
	case orderedmap.OrderedMap:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			flattenInto(flat, joinPath(prefix, key), child)
		}
	case *orderedmap.OrderedMap:
		flattenInto(flat, prefix, *v)
	case []any:
		if len(v) == 0 {
			flat.Set(prefix, "[]")
		}
		for i, child := range v {
			flattenInto(flat, joinPath(prefix, strconv.Itoa(i)), child)
		}
	default:
		flat.Set(prefix, formatValue(v))
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(value)
}
