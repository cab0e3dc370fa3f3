package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swagger2Fixture = `{
	"swagger": "2.0",
	"info": {"title": "Ledger API", "version": "1.0"},
	"basePath": "/",
	"paths": {
		"/users/transactions/{id}": {
			"put": {
				"parameters": [
					{"type": "integer", "name": "id", "in": "path", "required": true},
					{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TransactionRequest"}}
				],
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TransactionWrittenResponse"}},
					"404": {"schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
				}
			}
		}
	},
	"definitions": {
		"handler.TransactionDetailResponse": {
			"type": "object",
			"properties": {"transaction": {"$ref": "#/definitions/handler.TransactionResponse"}}
		}
	}
}`

func TestConvertSwagger2(t *testing.T) {
	spec, err := convertSwagger2([]byte(swagger2Fixture), Server{URL: "http://localhost:3400", Description: "Current host"})
	require.NoError(t, err)

	raw, err := json.Marshal(spec)
	require.NoError(t, err)
	out := string(raw)

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, "http://localhost:3400", spec.Servers[0].URL)
	assert.NotContains(t, out, "#/definitions/")
	assert.Contains(t, out, `"$ref":"#/components/schemas/handler.TransactionResponse"`)

	put := spec.Paths["/users/transactions/{id}"].(map[string]interface{})["put"].(map[string]interface{})

	params := put["parameters"].([]interface{})
	require.Len(t, params, 1)
	assert.Equal(t, map[string]interface{}{"type": "integer"}, params[0].(map[string]interface{})["schema"])

	body := put["requestBody"].(map[string]interface{})
	schema := body["content"].(map[string]interface{})["application/json"].(map[string]interface{})["schema"]
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/handler.TransactionRequest"}, schema)

	notFound := put["responses"].(map[string]interface{})["404"].(map[string]interface{})
	assert.Equal(t, "Not Found", notFound["description"])
	assert.Contains(t, notFound, "content")
	assert.NotContains(t, notFound, "schema")
}

func TestConvertSwagger2_InvalidJSON(t *testing.T) {
	_, err := convertSwagger2([]byte("{"), Server{})
	assert.Error(t, err)
}

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	req.Host = "api.example.test"
	rec := httptest.NewRecorder()

	require.NoError(t, ServeOpenAPI3Spec(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var spec OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "http://api.example.test", spec.Servers[0].URL)
	assert.Contains(t, spec.Paths, "/users/transactions/filter")
	assert.Contains(t, spec.Paths, "/users/signup")
}
