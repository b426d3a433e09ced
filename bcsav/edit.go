package bcsav

import (
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func topLevelKey(path string) string {
	return strings.SplitN(path, ".", 2)[0]
}

// Get reads one value by gjson path, e.g. "cat_food" or "cats.3".
func Get(record *Record, path string) (gjson.Result, error) {
	if err := RequireField(record, topLevelKey(path)); err != nil {
		return gjson.Result{}, err
	}
	bs, err := ToJSON(record, "")
	if err != nil {
		return gjson.Result{}, errors.Wrap(err, "bcsav.Get error")
	}
	result := gjson.GetBytes(bs, path)
	if !result.Exists() {
		return gjson.Result{}, ErrUnknownPath{Path: path}
	}
	return result, nil
}

// Set returns a copy of the record with the value at path replaced. The copy goes through
// FromJSON, so the new value is clamped like any other JSON load.
func Set(record *Record, path string, value any) (*Record, error) {
	return set(record, path, func(bs []byte) ([]byte, error) {
		return sjson.SetBytes(bs, path, value)
	})
}

// SetRaw is Set with a JSON literal as the value.
func SetRaw(record *Record, path string, raw string) (*Record, error) {
	if !gjson.Valid(raw) {
		return nil, ErrInvalidJSON{Reason: "value is not a JSON literal"}
	}
	return set(record, path, func(bs []byte) ([]byte, error) {
		return sjson.SetRawBytes(bs, path, []byte(raw))
	})
}

func set(record *Record, path string, edit func([]byte) ([]byte, error)) (*Record, error) {
	key := topLevelKey(path)
	if lo.Contains(ImmutableKeys, key) {
		return nil, ErrImmutableField{Key: key}
	}
	if _, err := Get(record, path); err != nil {
		return nil, err
	}

	bs, err := ToJSON(record, "")
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Set error")
	}
	bs, err = edit(bs)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Set error")
	}
	updated, err := FromJSON(bs)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Set error")
	}
	return updated, nil
}

// Clone deep copies a record, so edits to the copy never reach the original.
func Clone(record *Record) (*Record, error) {
	clone := Record{}
	err := copier.CopyWithOption(&clone, record, copier.Option{DeepCopy: true})
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Clone error")
	}
	// copier allocates a destination map even when the source one is nil.
	if len(clone.BoolBytes) == 0 {
		clone.BoolBytes = nil
	}
	return &clone, nil
}
