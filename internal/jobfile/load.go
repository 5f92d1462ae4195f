package jobfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/enigma/internal/breaker"
)

// Error codes for job loading.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // File not found
	ErrCodeFormat      = "E003" // Unsupported file extension
	ErrCodeParseFailed = "E004" // YAML parse failed
	ErrCodeBuildFailed = "E005" // CUE build or decode failed
	ErrCodeInvalid     = "E010" // Field validation failed
	ErrCodeConstraints = "E011" // Constraints rejected
)

// LoadError is an error found while loading a job file.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Format is a job file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".cue":
		return FormatCUE, true
	}
	return "", false
}

// Load reads, decodes and validates the job file at path.
func Load(path string) (*Job, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, &LoadError{Code: ErrCodeFormat, Path: path,
			Message: fmt.Sprintf("unsupported job file extension %q (want .yaml, .yml or .cue)", filepath.Ext(path))}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "job file not found", Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: "failed to read job file", Err: err}
	}

	job, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Parse decodes and validates a job. name is only used in messages.
func Parse(data []byte, format Format, name string) (*Job, error) {
	var job Job
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&job); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: name, Message: fmt.Sprintf("parsing YAML: %v", err), Err: err}
		}
	case FormatCUE:
		v := cuecontext.New().CompileBytes(data, cue.Filename(name))
		if err := v.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeBuildFailed, Path: name, Message: fmt.Sprintf("building CUE value: %v", err), Err: err}
		}
		if err := v.Validate(cue.Concrete(true)); err != nil {
			return nil, &LoadError{Code: ErrCodeBuildFailed, Path: name, Message: fmt.Sprintf("CUE value is not concrete: %v", err), Err: err}
		}
		if err := v.Decode(&job); err != nil {
			return nil, &LoadError{Code: ErrCodeBuildFailed, Path: name, Message: fmt.Sprintf("decoding CUE value: %v", err), Err: err}
		}
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Path: name, Message: fmt.Sprintf("unsupported format %q", format)}
	}

	if err := Validate(&job); err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = name
		}
		return nil, err
	}
	return &job, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their file names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field-level rules and then the constraints the job
// describes.
func Validate(job *Job) error {
	if err := validate.Struct(job); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &LoadError{Code: ErrCodeInvalid, Message: describeFieldError(fieldErrs[0]), Err: err}
		}
		return &LoadError{Code: ErrCodeInvalid, Message: err.Error(), Err: err}
	}

	if mods := job.ReflectorModifications; mods != nil && !mods.Allow && mods.Pairs != 0 {
		return &LoadError{Code: ErrCodeInvalid,
			Message: "reflector_modifications.pairs is set but allow is false"}
	}

	if job.NormalizedCiphertext().Text == "" {
		return &LoadError{Code: ErrCodeInvalid, Message: "ciphertext has no letters"}
	}

	if err := job.Constraints().Validate(); err != nil {
		return &LoadError{Code: ErrCodeConstraints, Message: err.Error(), Err: err}
	}
	return nil
}

// describeFieldError turns a validator error into a message naming the
// field as it appears in the file, e.g. "ring_settings[0][1]".
func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
}

// SearchSpace returns the size of the job's search.
func (j *Job) SearchSpace() (*breaker.SearchSpace, error) {
	return breaker.NewSearchSpace(j.Constraints())
}
