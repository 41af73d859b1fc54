// Package docs registers the OpenAPI description served under /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/health": {"get": {"tags": ["system"], "summary": "Dependency health", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current principal", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/vacancies": {"post": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "Publish a vacancy", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/vacancies/{id}": {
            "get": {"tags": ["vacancies"], "summary": "Get a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "Update a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/vacancies/{id}/close": {"post": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "Close a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/vacancies/{id}/reopen": {"post": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "Reopen a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/vacancies/{id}/applications": {"get": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "List applications for a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/vacancies/{id}/technologies": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "Attach technologies to a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["vacancies"], "summary": "Replace the technologies of a vacancy", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/applications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "List my applications", "parameters": [{"type": "string", "name": "scope", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Apply to a vacancy", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/applications/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Get an application", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Update an application", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/applications/{id}/history": {"get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Status history of an application", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/applications/{id}/interviews": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["interviews"], "summary": "List interviews of an application", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["interviews"], "summary": "Schedule an interview", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/interviews/{id}": {"patch": {"security": [{"BearerAuth": []}], "tags": ["interviews"], "summary": "Update an interview", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Job Board API",
	Description:      "Vacancies, applications and interviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
