package bcsav

import (
	"bytes"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// saturateJSON rewrites every number of doc that lands in an integer field of t so that it fits
// the field's width and sign: too large becomes the maximum, too small the minimum, and
// fractions are truncated. Values of any other shape are left for the decoder to judge.
func saturateJSON(doc []byte, t reflect.Type) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(doc))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return nil, errors.Wrap(err, "bcsav.saturateJSON error")
	}
	bs, err := json.Marshal(saturateValue(tree, t))
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.saturateJSON error")
	}
	return bs, nil
}

func jsonFieldName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name := strings.Split(field.Tag.Get("json"), ",")[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

func saturateValue(value any, t reflect.Type) any {
	switch t.Kind() {
	case reflect.Pointer:
		return saturateValue(value, t.Elem())
	case reflect.Struct:
		object, ok := value.(map[string]any)
		if !ok {
			return value
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			name := jsonFieldName(field)
			if child, ok := object[name]; ok && name != "" {
				object[name] = saturateValue(child, field.Type)
			}
		}
	case reflect.Map:
		object, ok := value.(map[string]any)
		if !ok {
			return value
		}
		for key, child := range object {
			object[key] = saturateValue(child, t.Elem())
		}
	case reflect.Slice, reflect.Array:
		items, ok := value.([]any)
		if !ok {
			return value
		}
		for i := range items {
			items[i] = saturateValue(items[i], t.Elem())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if number, ok := value.(json.Number); ok {
			return json.Number(saturateUint(number.String(), t.Bits()))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if number, ok := value.(json.Number); ok {
			return json.Number(saturateInt(number.String(), t.Bits()))
		}
	}
	return value
}

func saturateUint(s string, bits int) string {
	max := uint64(math.MaxUint64) >> (64 - bits)
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return strconv.FormatUint(lo.Min([]uint64{u, max}), 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return s
	}
	switch {
	case math.IsNaN(f) || f <= 0:
		return "0"
	case f >= float64(max):
		return strconv.FormatUint(max, 10)
	}
	return strconv.FormatUint(uint64(f), 10)
}

func saturateInt(s string, bits int) string {
	max := int64(math.MaxInt64 >> (64 - bits))
	min := -max - 1
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(lo.Clamp(i, min, max), 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return s
	}
	switch {
	case math.IsNaN(f):
		return "0"
	case f <= float64(min):
		return strconv.FormatInt(min, 10)
	case f >= float64(max):
		return strconv.FormatInt(max, 10)
	}
	return strconv.FormatInt(int64(f), 10)
}
