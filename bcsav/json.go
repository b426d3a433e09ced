package bcsav

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/dstruct"
)

// ToJSON dumps the record structurally. The opaque tail is base64 under "opaque_tail". An empty
// indent gives compact output.
func ToJSON(record *Record, indent string) ([]byte, error) {
	var bs []byte
	var err error
	if indent == "" {
		bs, err = json.Marshal(record)
	} else {
		bs, err = json.MarshalIndent(record, "", indent)
	}
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.ToJSON error")
	}
	return bs, nil
}

// FromJSON restores a record and clamps every value to the width its field has at the record's
// revision: integers first saturate to their field's type, then packed counters narrow further.
func FromJSON(bs []byte) (*Record, error) {
	if !gjson.ValidBytes(bs) {
		return nil, ErrInvalidJSON{Reason: "not a JSON document"}
	}
	root := gjson.ParseBytes(bs)
	if !root.IsObject() {
		return nil, ErrInvalidJSON{Reason: "the document root must be an object"}
	}
	for _, key := range RequiredKeys {
		if !root.Get(key).Exists() {
			return nil, ErrMissingKey{Key: key}
		}
	}

	saturated, err := saturateJSON(bs, reflect.TypeOf(dstruct.Record{}))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidJSON{Reason: err.Error()}, "bcsav.FromJSON error")
	}
	record := dstruct.Record{}
	if err := json.Unmarshal(saturated, &record); err != nil {
		return nil, errors.Wrap(ErrInvalidJSON{Reason: err.Error()}, "bcsav.FromJSON error")
	}
	country, err := dgate.ParseCountry(string(record.Country))
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.FromJSON error")
	}
	record.Country = country

	if err := dstruct.Clamp(&record); err != nil {
		return nil, errors.Wrap(err, "bcsav.FromJSON error")
	}
	return &record, nil
}
