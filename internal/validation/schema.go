// Package validation checks CMS entry payloads against the embedded JSON
// schema of their content type before they are mapped onto relational rows.
package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	ErrSchemaUnknown    = errors.New("schema unknown")
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Content types with an embedded schema.
const (
	ContentTypeMachine     = "machine"
	ContentTypeProductType = "productType"
	ContentTypeTechnology  = "technology"
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	ContentType string
	Issues      []ValidationIssue
	Cause       error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	prefix := ""
	if e.ContentType != "" {
		prefix = e.ContentType + ": "
	}
	return prefix + strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// ContentTypes lists the content types with an embedded schema.
func ContentTypes() []string {
	return []string{ContentTypeMachine, ContentTypeProductType, ContentTypeTechnology}
}

// ValidateEntry validates decoded entry fields against the schema registered
// for contentType. Fields must come from encoding/json (maps, slices,
// float64 or json.Number).
func ValidateEntry(contentType string, fields map[string]any) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[contentType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaUnknown, contentType)
	}
	var payload any = fields
	if fields == nil {
		payload = map[string]any{}
	}
	if err := schema.Validate(payload); err != nil {
		return &PayloadValidationError{
			ContentType: contentType,
			Issues:      Issues(err),
			Cause:       err,
		}
	}
	return nil
}

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema, len(ContentTypes()))
		for _, contentType := range ContentTypes() {
			schema, err := compileSchema(contentType)
			if err != nil {
				compileErr = fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, contentType, err)
				return
			}
			compiled[contentType] = schema
		}
	})
	return compiled, compileErr
}

func compileSchema(contentType string) (*jsonschema.Schema, error) {
	name := path.Join("schemas", contentType+".json")
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
