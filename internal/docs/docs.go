// Package docs holds the OpenAPI description served at /swagger.
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
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Get the current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}
                }
            }
        },
        "/session/start": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Start a quiz",
                "parameters": [
                    {"description": "Player", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StartRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/session/answer": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Answer the current question",
                "parameters": [
                    {"description": "Option index 0-3", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/session/next": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Advance to the next question, or finish the quiz",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/session/restart": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Leave the result screen",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/session/retry": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Fetch questions again after a failure",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/session/home": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Return to the welcome screen from the error screen",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/leaderboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leaderboard"],
                "summary": "List the leaderboard",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Number of entries (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LeaderboardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "tags": ["leaderboard"],
                "summary": "Clear the leaderboard",
                "parameters": [
                    {"description": "Confirmation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResetLeaderboardRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.StartRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 64}}
        },
        "dto.AnswerRequest": {
            "type": "object",
            "required": ["option"],
            "properties": {"option": {"type": "integer", "minimum": 0, "maximum": 3}}
        },
        "dto.ResetLeaderboardRequest": {
            "type": "object",
            "properties": {"confirm": {"type": "boolean"}}
        },
        "dto.QuestionView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "text": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correct_answer_index": {"type": "integer"},
                "explanation": {"type": "string"}
            }
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["WELCOME", "LOADING", "QUIZ", "RESULT", "ERROR"]},
                "user_name": {"type": "string"},
                "question_index": {"type": "integer"},
                "question_count": {"type": "integer"},
                "progress": {"type": "number"},
                "question": {"$ref": "#/definitions/dto.QuestionView"},
                "selected_option": {"type": "integer"},
                "is_answered": {"type": "boolean"},
                "correct": {"type": "boolean"},
                "display_score": {"type": "integer"},
                "is_last_question": {"type": "boolean"},
                "error_message": {"type": "string"},
                "final_score": {"type": "integer"},
                "verdict": {"type": "string"},
                "last_entry_id": {"type": "string"}
            }
        },
        "dto.LeaderboardEntryResponse": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "score": {"type": "integer"},
                "timestamp": {"type": "integer"},
                "highlight": {"type": "boolean"}
            }
        },
        "dto.LeaderboardResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/dto.LeaderboardEntryResponse"}}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "AI Quiz API",
	Description:      "Quiz session and leaderboard API for the AI knowledge quiz.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
