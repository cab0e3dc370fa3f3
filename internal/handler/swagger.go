package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ashecone/expense-tracker-api/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

const (
	swagger2DefinitionsPrefix = "#/definitions/"
	openAPI3SchemasPrefix     = "#/components/schemas/"
)

// transformRefs rewrites $ref targets from definitions to components/schemas
// and converts non-body parameters to the OpenAPI 3.0 schema form
func transformRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return transformParameter(v)
			}
		}

		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, swagger2DefinitionsPrefix, openAPI3SchemasPrefix, 1)
				continue
			}
			result[key] = transformRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = transformRefs(item)
		}
		return result
	default:
		return data
	}
}

// transformParameter converts a query or path parameter to OpenAPI 3.0 format.
// Body parameters are returned unchanged for liftRequestBodies.
func transformParameter(param map[string]interface{}) map[string]interface{} {
	if param["in"] == "body" {
		return param
	}

	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			if field == "items" {
				schema[field] = transformRefs(val)
			} else {
				schema[field] = val
			}
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}

	return result
}

// liftRequestBodies moves each operation's body parameter into requestBody and
// rewrites response schemas under content, as OpenAPI 3.0 expects
func liftRequestBodies(paths map[string]interface{}) {
	for _, item := range paths {
		operations, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, op := range operations {
			operation, ok := op.(map[string]interface{})
			if !ok {
				continue
			}

			if params, ok := operation["parameters"].([]interface{}); ok {
				kept := make([]interface{}, 0, len(params))
				for _, p := range params {
					param, _ := p.(map[string]interface{})
					if param != nil && param["in"] == "body" {
						operation["requestBody"] = map[string]interface{}{
							"description": param["description"],
							"required":    param["required"],
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{"schema": transformRefs(param["schema"])},
							},
						}
						continue
					}
					kept = append(kept, p)
				}
				if len(kept) == 0 {
					delete(operation, "parameters")
				} else {
					operation["parameters"] = kept
				}
			}

			if responses, ok := operation["responses"].(map[string]interface{}); ok {
				for code, r := range responses {
					resp, ok := r.(map[string]interface{})
					if !ok {
						continue
					}
					if schema, ok := resp["schema"]; ok {
						delete(resp, "schema")
						resp["content"] = map[string]interface{}{
							"application/json": map[string]interface{}{"schema": schema},
						}
					}
					if _, ok := resp["description"]; !ok {
						status, _ := strconv.Atoi(code)
						resp["description"] = http.StatusText(status)
					}
				}
			}
		}
	}
}

// convertSwagger2 converts a swag-generated Swagger 2.0 document to OpenAPI 3.0
func convertSwagger2(doc []byte, server Server) (*OpenAPI3Spec, error) {
	var swagger2 map[string]interface{}
	if err := json.Unmarshal(doc, &swagger2); err != nil {
		return nil, err
	}

	info, _ := swagger2["info"].(map[string]interface{})

	paths, _ := swagger2["paths"].(map[string]interface{})
	transformedPaths, _ := transformRefs(paths).(map[string]interface{})
	liftRequestBodies(transformedPaths)

	components := make(map[string]interface{})
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = transformRefs(definitions)
	}

	if basePath, _ := swagger2["basePath"].(string); basePath != "" && basePath != "/" {
		server.URL = strings.TrimSuffix(server.URL, "/") + basePath
	}

	return &OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    []Server{server},
		Paths:      transformedPaths,
		Components: components,
	}, nil
}

// ServeOpenAPI3Spec serves the swagger spec converted to OpenAPI 3.0, with the
// server URL taken from the incoming request
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	spec, err := convertSwagger2([]byte(doc), requestServer(c))
	if err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	return c.JSON(http.StatusOK, spec)
}

// requestServer describes the server the document was fetched from
func requestServer(c echo.Context) Server {
	return Server{
		URL:         c.Scheme() + "://" + c.Request().Host,
		Description: "Current host",
	}
}
