// Package validation checks JSON documents, such as the treasure catalogue
// seed, against JSON schemas shipped under configs/schemas.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
}

// validator compiles each schema once and is safe for concurrent use
type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
	printer  *message.Printer
}

func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
		printer:  message.NewPrinter(language.English),
	}
}

func (v *validator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	return v.ValidateBytes(data, schemaPath)
}

func (v *validator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.schema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	// numbers decode as json.Number so integer keywords stay exact
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	var verr *jsonschema.ValidationError
	switch err := schema.Validate(doc); {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(v.describe(verr, nil), "\n"))
	default:
		return fmt.Errorf("validation error: %w", err)
	}
}

func (v *validator) schema(schemaPath string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[schemaPath]; ok {
		return s, nil
	}
	resolved, err := resolveSchemaPath(schemaPath)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return nil, err
	}
	s, err := v.compiler.Compile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	v.schemas[schemaPath] = s
	return s, nil
}

// describe renders the leaves of the cause tree, one line per failing
// location, as "at <pointer>: <keyword>: <message>"
func (v *validator) describe(err *jsonschema.ValidationError, lines []string) []string {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			lines = v.describe(cause, lines)
		}
		return lines
	}

	at := "(root)"
	if len(err.InstanceLocation) > 0 {
		at = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind == nil {
		return append(lines, fmt.Sprintf("  - at %s: validation failed", at))
	}
	keyword := strings.Join(err.ErrorKind.KeywordPath(), ".")
	return append(lines, fmt.Sprintf("  - at %s: %s: %s", at, keyword, err.ErrorKind.LocalizedString(v.printer)))
}

// resolveSchemaPath accepts absolute paths as-is. Relative paths are tried
// against the working directory and then each parent up to the module root,
// so tests in nested packages find configs/ too.
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) || fileExists(schemaPath) {
		return schemaPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	for dir := cwd; ; {
		if candidate := filepath.Join(dir, schemaPath); fileExists(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if fileExists(filepath.Join(dir, "go.mod")) || parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("schema file not found: %s (searched from %s)", schemaPath, cwd)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
