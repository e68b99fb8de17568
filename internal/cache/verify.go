package cache

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/cache.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded cache schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling cache schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("cache.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("cache.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling cache schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// verify checks a raw cache document against the embedded schema and
// reports the first violation with its location.
func verify(raw []byte) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("document rejected: %s", firstIssue(ve))
		}
		return err
	}
	return nil
}

// firstIssue walks to the deepest cause and renders it with its instance
// location, e.g. "got string, want object at /data/cloudservers/0".
func firstIssue(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}

	msg := ve.Error()
	if ve.ErrorKind != nil {
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	if len(ve.InstanceLocation) == 0 {
		return msg
	}
	return fmt.Sprintf("%s at /%s", msg, strings.Join(ve.InstanceLocation, "/"))
}
