package server

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"pizzahub/internal/service"
)

//go:embed openapi.yaml
var openapiSpec []byte

// LoadDocument parses and validates the embedded API document.
func LoadDocument(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi schema: %w", err)
	}
	return doc, nil
}

// Requirements reads the required body fields of each write operation from
// doc.
func Requirements(doc *openapi3.T) service.Requirements {
	return service.Requirements{
		Pizza:    requiredFields(doc, pathShopPizzas, "POST"),
		Beverage: requiredFields(doc, pathPizzaBeverages, "POST"),
		Order:    requiredFields(doc, pathOrders, "POST"),
		Status:   requiredFields(doc, pathOrderStatus, "PATCH"),
	}
}

// Endpoints lists "METHOD path" for every documented operation, sorted.
func Endpoints(doc *openapi3.T) []string {
	var endpoints []string
	for path, item := range doc.Paths {
		for method := range item.Operations() {
			endpoints = append(endpoints, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(endpoints)
	return endpoints
}

// operationFor returns the OpenAPI operation for a given path and method.
func operationFor(doc *openapi3.T, path, method string) *openapi3.Operation {
	if doc == nil {
		return nil
	}
	if item := doc.Paths.Find(path); item != nil {
		return item.GetOperation(strings.ToUpper(method))
	}
	return nil
}

func requiredFields(doc *openapi3.T, path, method string) []string {
	op := operationFor(doc, path, method)
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	mt := op.RequestBody.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return collectRequired(mt.Schema.Value)
}

// collectRequired returns the schema's required fields, including those of
// every allOf branch. oneOf and anyOf branches are skipped since only one of
// them has to match.
func collectRequired(schema *openapi3.Schema) []string {
	if schema == nil {
		return nil
	}
	required := append([]string(nil), schema.Required...)
	for _, sub := range schema.AllOf {
		if sub.Value == nil {
			continue
		}
		required = append(required, collectRequired(sub.Value)...)
	}
	return required
}

var pathParam = regexp.MustCompile(`\{(\w+)\}`)

// fiberPath turns /api/pizzas/{id} into /api/pizzas/:id.
func fiberPath(path string) string {
	return pathParam.ReplaceAllString(path, ":$1")
}
