// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "List habits in creation order",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/habit"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Add a habit",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/habitInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/habit"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/habits/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Rename a habit",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/habitInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Remove a habit; its completion history is kept",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/habits/{id}/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Flip today's completion of a habit",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/habit"}}}
            }
        },
        "/habits/{id}/notification": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Configure or clear a habit's reminder",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/notificationInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/habit"}}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/habits/{id}/reminders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Upcoming reminder triggers of a habit",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/reminders"}}, "404": {"description": "Not Found"}}
            }
        },
        "/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Derived statistics, optionally for one habit",
                "parameters": [{"type": "integer", "name": "habit_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/weekly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Seven days of completion progress",
                "parameters": [
                    {"type": "string", "enum": ["rolling", "week"], "name": "mode", "in": "query"},
                    {"type": "integer", "name": "habit_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/monthly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Month calendar grid",
                "parameters": [
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "habit_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/achievements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Unlocked and locked achievements",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/achievements/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "One achievement with its current value and progress",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Read the in-app profile and theme",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/profile"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Set name, date of birth and picture",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/userProfile"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/profile"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/profile/theme": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Switch between light, dark and system theme",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/themeInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/profile"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/data": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["data"],
                "summary": "Download the full state blob",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["data"],
                "summary": "Replace the full state blob",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["data"],
                "summary": "Erase all habits and history",
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "display_name": {"type": "string"}
            }
        },
        "habitInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "icon": {"type": "string"}
            }
        },
        "habit": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "icon": {"type": "string"},
                "completed": {"type": "boolean"}
            }
        },
        "notificationInput": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"},
                "reminderTime": {"type": "string", "example": "08:30"},
                "recurring": {"type": "boolean"},
                "intervalMinutes": {"type": "integer"}
            }
        },
        "reminders": {
            "type": "object",
            "properties": {
                "habitId": {"type": "integer"},
                "triggers": {"type": "array", "items": {"type": "string", "format": "date-time"}}
            }
        },
        "userProfile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "dob": {"type": "string", "example": "03/04/1995"},
                "profileImage": {"type": "string"}
            }
        },
        "themeInput": {
            "type": "object",
            "properties": {
                "theme": {"type": "string", "enum": ["light", "dark", "system"]}
            }
        },
        "profile": {
            "type": "object",
            "properties": {
                "userProfile": {"$ref": "#/definitions/userProfile"},
                "theme": {"type": "string", "enum": ["light", "dark", "system"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Habits API",
	Description:      "Daily habit tracking with streaks, statistics and achievements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
