// Package docs registers the OpenAPI description served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/orgs/{orgID}/updates": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orgs"],
                "summary": "Ingest a status update",
                "parameters": [
                    {"type": "string", "description": "Org ID", "name": "orgID", "in": "path", "required": true},
                    {"type": "boolean", "description": "Queue instead of ingesting inline", "name": "async", "in": "query"},
                    {"description": "Update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.IngestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.APIResponse"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/types.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.APIResponse"}}
                }
            }
        },
        "/orgs/{orgID}/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orgs"],
                "summary": "Current org state",
                "parameters": [
                    {"type": "string", "description": "Org ID", "name": "orgID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}
                }
            }
        },
        "/orgs/{orgID}/ask": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orgs"],
                "summary": "Ask about an org",
                "parameters": [
                    {"type": "string", "description": "Org ID", "name": "orgID", "in": "path", "required": true},
                    {"description": "Question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.AskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}
                }
            }
        },
        "/orgs/{orgID}/graph": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orgs"],
                "summary": "Relationship graph of the latest update",
                "parameters": [
                    {"type": "string", "description": "Org ID", "name": "orgID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": true}
            }
        },
        "types.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/types.APIError"},
                "meta": {"type": "object", "properties": {"request_id": {"type": "string"}}}
            }
        },
        "types.AskRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {"question": {"type": "string", "example": "What changed today?"}}
        },
        "types.IngestRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string", "example": "Backend is blocked by api team. Launch Friday."},
                "source": {"type": "string", "example": "Standup notes"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SentinelOS API",
	Description:      "Turns free-form status updates into versioned truths, action items, risk and briefings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
