// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/auth/login": {
            "post": {
                "description": "Authenticate with email and password and get a bearer token. Accepts JSON or the OAuth2 password form.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "User login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/handlers.TokenResponse"}},
                    "400": {"description": "Incorrect email or password, or inactive user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login/test-token": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Test access token",
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "description": "Items to skip (default 0)", "name": "skip", "in": "query"},
                    {"type": "integer", "description": "Page size (1-200, default 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Paginated users"},
                    "403": {"description": "Not a superuser", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created", "schema": {"$ref": "#/definitions/models.User"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/models.User"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [
                    {"description": "Fields to update", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateMeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated user", "schema": {"$ref": "#/definitions/models.User"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "User", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user by ID",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated user", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "enum": ["income", "expense"], "name": "transaction_type", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated transactions"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [
                    {"description": "Transaction details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Transaction created", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "422": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Get transaction",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction", "schema": {"$ref": "#/definitions/models.Transaction"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Update transaction",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateTransactionRequest"}}
                ],
                "responses": {"200": {"description": "Updated transaction", "schema": {"$ref": "#/definitions/models.Transaction"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete transaction",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/budgets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "List budgets",
                "parameters": [
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated budgets"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Create a budget",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateBudgetRequest"}}
                ],
                "responses": {"201": {"description": "Budget created", "schema": {"$ref": "#/definitions/models.Budget"}}}
            }
        },
        "/budgets/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Get budget",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Budget", "schema": {"$ref": "#/definitions/models.Budget"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Update budget",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateBudgetRequest"}}
                ],
                "responses": {"200": {"description": "Updated budget", "schema": {"$ref": "#/definitions/models.Budget"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Delete budget",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/goals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "List goals",
                "parameters": [
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated goals"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Create a goal",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateGoalRequest"}}
                ],
                "responses": {"201": {"description": "Goal created", "schema": {"$ref": "#/definitions/models.Goal"}}}
            }
        },
        "/goals/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Get goal",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Goal", "schema": {"$ref": "#/definitions/models.Goal"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Update goal",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateGoalRequest"}}
                ],
                "responses": {"200": {"description": "Updated goal", "schema": {"$ref": "#/definitions/models.Goal"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Delete goal",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted"}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}
                    }
                }
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.TokenResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "handlers.CreateUserRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8, "maxLength": 128}, "full_name": {"type": "string"}}
        },
        "handlers.UpdateMeRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "full_name": {"type": "string"}}
        },
        "handlers.UpdateUserRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "full_name": {"type": "string"}, "is_active": {"type": "boolean"}, "is_superuser": {"type": "boolean"}}
        },
        "handlers.CreateTransactionRequest": {
            "type": "object",
            "required": ["amount", "category", "type"],
            "properties": {"amount": {"type": "number"}, "category": {"type": "string"}, "type": {"type": "string", "enum": ["income", "expense"]}, "date": {"type": "string"}, "description": {"type": "string"}}
        },
        "handlers.UpdateTransactionRequest": {
            "type": "object",
            "properties": {"amount": {"type": "number"}, "category": {"type": "string"}, "type": {"type": "string", "enum": ["income", "expense"]}, "date": {"type": "string"}, "description": {"type": "string"}}
        },
        "handlers.CreateBudgetRequest": {
            "type": "object",
            "required": ["amount", "category", "end_date"],
            "properties": {"category": {"type": "string"}, "amount": {"type": "number"}, "start_date": {"type": "string"}, "end_date": {"type": "string"}, "name": {"type": "string"}}
        },
        "handlers.UpdateBudgetRequest": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "amount": {"type": "number"}, "start_date": {"type": "string"}, "end_date": {"type": "string"}, "name": {"type": "string"}}
        },
        "handlers.CreateGoalRequest": {
            "type": "object",
            "required": ["name", "target_amount"],
            "properties": {"name": {"type": "string"}, "target_amount": {"type": "number"}, "current_amount": {"type": "number"}, "deadline": {"type": "string"}, "description": {"type": "string"}}
        },
        "handlers.UpdateGoalRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "target_amount": {"type": "number"}, "current_amount": {"type": "number"}, "deadline": {"type": "string"}, "description": {"type": "string"}}
        },
        "models.User": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "full_name": {"type": "string"}, "is_active": {"type": "boolean"}, "is_superuser": {"type": "boolean"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}
        },
        "models.Transaction": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "amount": {"type": "number"}, "category": {"type": "string"}, "type": {"type": "string"}, "date": {"type": "string"}, "description": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}
        },
        "models.Budget": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "category": {"type": "string"}, "amount": {"type": "number"}, "start_date": {"type": "string"}, "end_date": {"type": "string"}, "name": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}
        },
        "models.Goal": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "name": {"type": "string"}, "target_amount": {"type": "number"}, "current_amount": {"type": "number"}, "deadline": {"type": "string"}, "description": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Personal Finance Tracker API",
	Description:      "Multi-tenant API for tracking transactions, budgets and savings goals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
