package ds

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// DumpJSON is meant for error messages and log lines, where a failed marshal should not hide
// the original problem.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "DumpJSON error").Error()
	}

	return string(tBytes)
}
