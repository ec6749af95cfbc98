// Package docs registers the OpenAPI description served under /swagger.
//
// The template is maintained by hand. It mirrors the swag annotations on the
// handlers in internal/http/handler, so `swag init -g cmd/api/main.go` can
// regenerate it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "summary": "Welcome message",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.welcomeResponse"}}
                }
            }
        },
        "/weather/{city}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Current weather, proxied verbatim from the provider",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "city", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Provider document", "schema": {"type": "object"}},
                    "502": {"description": "Provider unreachable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/weather/forecast/{city}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Forecast, proxied verbatim from the provider",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "city", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Provider document", "schema": {"type": "object"}},
                    "502": {"description": "Provider unreachable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/lookups": {
            "get": {
                "produces": ["application/json"],
                "summary": "List journaled lookups",
                "parameters": [
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LookupListResult"}},
                    "404": {"description": "Journal disabled", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/lookups/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get one journaled lookup",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LookupDetail"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/lookups/{id}/payload": {
            "get": {
                "produces": ["application/json"],
                "summary": "Archived raw provider body of a lookup",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Provider document", "schema": {"type": "object"}},
                    "404": {"description": "Not archived", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.welcomeResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
                }
            }
        },
        "model.Lookup": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["weather", "forecast"]},
                "city": {"type": "string"},
                "upstream_status": {"type": "integer"},
                "duration_ms": {"type": "integer"},
                "archive_key": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "service.LookupDetail": {
            "allOf": [
                {"$ref": "#/definitions/model.Lookup"},
                {"type": "object", "properties": {"payload_url": {"type": "string"}}}
            ]
        },
        "service.LookupListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Lookup"}},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Weather API",
	Description:      "Pass-through proxy for the OpenWeatherMap current weather and forecast endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
