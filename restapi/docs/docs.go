// Package docs holds the swagger spec served by the REST API.
// Regenerate with: swag init -g server.go -d restapi --parseDependency -o restapi/docs
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
        "/cache/{key}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Cache"],
                "summary": "getCacheValue returns the value of a cache key.",
                "parameters": [
                    {"type": "string", "description": "Cache key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dbconnect.CacheEntry"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {}}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cache"],
                "summary": "setCacheValue sets the value of a cache key, no expiration.",
                "parameters": [
                    {"type": "string", "description": "Cache key", "name": "key", "in": "path", "required": true},
                    {"description": "Value to set", "name": "value", "in": "body", "required": true, "schema": {"$ref": "#/definitions/restapi.setCacheValueRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dbconnect.Ack"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "health pings the record store and the cache.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "getUser returns the user record with a given id.",
                "parameters": [
                    {"minLength": 1, "type": "string", "description": "UserId of the record", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dbconnect.UserRecord"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {}}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "description": "putUser writes (or overwrites) the user record keyed by id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "putUser writes a user record.",
                "parameters": [
                    {"minLength": 1, "type": "string", "description": "UserId of the record", "name": "id", "in": "path", "required": true},
                    {"description": "Name and email", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/restapi.putUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dbconnect.Ack"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {}}}
                }
            }
        }
    },
    "definitions": {
        "dbconnect.Ack": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "operation": {"type": "string"},
                "request_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dbconnect.CacheEntry": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "dbconnect.UserRecord": {
            "type": "object",
            "properties": {
                "Email": {"type": "string"},
                "Name": {"type": "string"},
                "UserId": {"type": "string"}
            }
        },
        "restapi.putUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "restapi.setCacheValueRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "dbconnect REST API",
	Description:      "User records and cache values over managed data services.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
