// Package bind decodes and validates request payloads for report handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "crimestats/internal/platform/errors"
	"crimestats/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a JSON body when Options.MaxBytes is zero
const DefaultMaxBytes int64 = 64 << 10

// Options tunes ParseJSON
type Options struct {
	MaxBytes   int64
	AllowEmpty bool // empty body decodes to the zero value
	AllowExtra bool // unknown fields are ignored instead of rejected
}

type validatorSvc struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	svc  validatorSvc
)

func get() validatorSvc {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")

		svc = validatorSvc{v: v, trans: trans}
	})
	return svc
}

// jsonName reports fields by their wire name so errors match the request
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON reads the request body into T and validates it
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var (
		zero T
		o    Options
	)
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if r.Body == nil {
		r.Body = http.NoBody
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("request body close failed")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(r.Body, o.MaxBytes+1))
	if err != nil {
		return zero, perr.JSONErrf("read body: %v", err)
	}
	if int64(len(raw)) > o.MaxBytes {
		return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if o.AllowEmpty {
			return zero, Validate(zero)
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if !o.AllowExtra {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate checks v against its validate tags. The first failing field is
// attached to the returned validation error.
func Validate(v any) error {
	err := get().v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	field, msg := describe(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

func describe(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(get().trans)
	}
	return "", err.Error()
}
