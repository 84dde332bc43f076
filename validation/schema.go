// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Names of the embedded JSON Schemas, for [Validator.ValidateJSON].
const (
	SchemaApkbuild     = "apkbuild"
	SchemaPkgInfo      = "pkginfo"
	SchemaDependencies = "dependencies"
	SchemaSecfixes     = "secfixes"
)

const schemaBaseURL = "https://alpkit.dev/schemas/"

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	compiledSchemas = sync.OnceValues(compileSchemas)
	schemaPrinter   = message.NewPrinter(language.English)
)

// compileSchemas compiles every embedded schema with one compiler, so
// that references between them resolve.
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, err
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid schema JSON %s: %w", e.Name(), err)
		}
		if err := c.AddResource(schemaBaseURL+e.Name(), doc); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", e.Name(), err)
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}

	schemas := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		sch, err := c.Compile(schemaBaseURL + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		schemas[name] = sch
	}

	return schemas, nil
}

// Schemas returns the names of the embedded schemas, sorted.
func Schemas() []string {
	schemas, err := compiledSchemas()
	if err != nil {
		return nil
	}

	return slices.Sorted(maps.Keys(schemas))
}

// Schema returns the source of an embedded schema.
func Schema(name string) ([]byte, error) {
	data, err := schemaFS.ReadFile(path.Join("schemas", name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}

	return data, err
}

// ValidateJSON checks a JSON document against the named embedded schema.
// It returns nil, an [*Error] listing the violations, or a plain error
// when the schema is unknown or the document is not JSON.
func (v *Validator) ValidateJSON(schema string, data []byte) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}

	sch, ok := schemas[schema]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Error{Fields: []FieldError{{Code: "schema_validation_error", Message: err.Error()}}}
	}

	var result Error
	v.collectSchemaErrors(verr, &result)
	result.Sort()

	return &result
}

// ValidateJSON checks data with a [Validator] that has the default
// configuration.
func ValidateJSON(schema string, data []byte) error {
	return defaultValidator().ValidateJSON(schema, data)
}

// collectSchemaErrors flattens the error tree into its leaves.
func (v *Validator) collectSchemaErrors(verr *jsonschema.ValidationError, result *Error) {
	if len(verr.Causes) == 0 {
		if result.full(v.cfg.maxErrors) {
			return
		}

		keyword := "schema"
		if kp := verr.ErrorKind.KeywordPath(); len(kp) > 0 {
			keyword = kp[len(kp)-1]
		}
		result.Add(strings.Join(verr.InstanceLocation, "."), "schema."+keyword, "",
			verr.ErrorKind.LocalizedString(schemaPrinter))

		return
	}

	for _, cause := range verr.Causes {
		v.collectSchemaErrors(cause, result)
	}
}
