package query

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("query: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	validate.RegisterStructValidation(locationRange, LocationQuery{})
}

// locationRange enforces the WGS84 degree ranges. RD New coordinates
// are projected meters and carry no fixed bounds, so only the tag
// checks apply there.
func locationRange(sl validator.StructLevel) {
	loc := sl.Current().Interface().(LocationQuery)
	if loc.SRID != SRIDWGS84 {
		return
	}

	if loc.Latitude < -90 || loc.Latitude > 90 {
		sl.ReportError(loc.Latitude, "latitude", "Latitude", "latitude_range", "")
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		sl.ReportError(loc.Longitude, "longitude", "Longitude", "longitude_range", "")
	}
}

// Validate the provided model against its declared tags.
func Validate(val any) error {
	if err := validate.Struct(val); err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			field := FieldError{
				Field: verror.Field(),
				Err:   customErrForTag(verror.Tag(), verror),
			}
			fields = append(fields, field)
		}
		return fields
	}

	return nil
}

// FieldError represents a single validation error for a specific field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "min":
		return "must not be negative"
	case "oneof":
		return "must be a supported srid"
	case "latitude_range":
		return "must be within -90..90 degrees"
	case "longitude_range":
		return "must be within -180..180 degrees"
	default:
		return verror.Translate(translator)
	}
}
