package infobip

import (
	"strings"

	spec "github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI describes the descriptors as an OpenAPI 3 document.
// Responses are passed through as is, so they are not described.
func OpenAPI(baseURL string, descriptors []*Descriptor) *spec.T {
	swag := &spec.T{
		OpenAPI: "3.0.0",
		Info: &spec.Info{
			Title:   "Infobip",
			Version: "1.0.0",
		},
		Paths: spec.Paths{},
	}
	if baseURL != "" {
		swag.Servers = spec.Servers{{URL: baseURL}}
	}

	for _, d := range descriptors {
		op := spec.NewOperation()
		op.OperationID = d.Name
		op.Tags = append(op.Tags, pathTag(d.Path))

		for _, name := range findUrlKeys(d.Path) {
			op.AddParameter(spec.NewPathParameter(name).WithSchema(schemaFor(d.RouteParams[name])))
		}

		if d.InQuery() {
			for _, p := range d.Params {
				name, required := p.Key()
				op.AddParameter(spec.NewQueryParameter(name).WithSchema(schemaFor(p.Types)).WithRequired(required))
			}
		} else if len(d.Params) != 0 {
			obj := spec.NewObjectSchema()
			for _, p := range d.Params {
				name, required := p.Key()
				propSchema := schemaFor(p.Types)
				if def, has := d.Defaults[name]; has {
					propSchema.Default = def
				}
				obj.WithProperty(name, propSchema)
				if required {
					obj.Required = append(obj.Required, name)
				}
			}
			body := spec.NewRequestBody().
				WithRequired(true).
				WithContent(spec.NewContentWithSchema(obj, []string{d.BodyMode.ContentType()}))
			op.RequestBody = &spec.RequestBodyRef{Value: body}
		}

		if op.Responses == nil {
			op.Responses = spec.NewResponses()
		}
		op.AddResponse(200, spec.NewResponse().WithDescription("raw API response"))

		path := placeholderRe.ReplaceAllString(d.Path, "{$1}")
		item, has := swag.Paths[path]
		if !has {
			item = &spec.PathItem{}
			swag.Paths[path] = item
		}
		item.SetOperation(d.Method, op)
	}

	return swag
}

// schemaFor returns the schema of a value of the given types.
func schemaFor(types Types) *spec.Schema {
	schemas := make([]*spec.Schema, 0, len(types))
	for _, t := range types {
		if s := typeSchema(t); s != nil {
			schemas = append(schemas, s)
		}
	}
	switch len(schemas) {
	case 0:
		return spec.NewSchema()
	case 1:
		return schemas[0]
	}
	return spec.NewOneOfSchema(schemas...)
}

func typeSchema(t Type) *spec.Schema {
	switch t {
	case String:
		return spec.NewStringSchema()
	case Number:
		return spec.NewFloat64Schema()
	case Boolean:
		return spec.NewBoolSchema()
	case Array:
		return spec.NewArraySchema().WithItems(spec.NewSchema())
	case Object:
		return spec.NewObjectSchema()
	case Date:
		return spec.NewDateTimeSchema()
	}
	return nil
}

// pathTag returns the first segment of a path: "sms" for "/sms/1/reports".
func pathTag(path string) string {
	tag, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return tag
}
