package cli

import (
	"errors"
	"fmt"
	"strconv"

	"gestao-cli/internal/gateway"
)

type notFoundError struct {
	kind string
	id   int64
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s %d não encontrado", e.kind, e.id)
}

func errNotFound(kind string, id int64) error {
	return notFoundError{kind: kind, id: id}
}

// orNotFound maps an API 404 on id to the record-not-found error. The record
// can vanish between the lookup and the write. Any other failure was already
// shown by the controller's notice.
func orNotFound(err error, kind string, id int64) error {
	if gateway.IsNotFound(err) {
		return errNotFound(kind, id)
	}
	return reported(err)
}

// reportedError marks a failure the user already saw as a notice.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

type invalidFlagError struct {
	flag  string
	value string
	hint  string
}

func (e invalidFlagError) Error() string {
	msg := fmt.Sprintf("valor inválido para --%s: %q", e.flag, e.value)
	if e.hint != "" {
		msg += " (" + e.hint + ")"
	}
	return msg
}

func errInvalidFlag(flag, value, hint string) error {
	return invalidFlagError{flag: flag, value: value, hint: hint}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido: " + strconv.Quote(arg))
	}
	return id, nil
}
