// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g internal/api/router.go -o docs
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
        "/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/user/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/mobile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mobile"],
                "summary": "Browse the catalog",
                "parameters": [
                    {"description": "Search and sort", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.catalogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Mobile"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/mobile/seller": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mobile"],
                "summary": "List the caller's own mobiles",
                "parameters": [
                    {"description": "Search and sort", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.sellerListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Mobile"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/mobile/add": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mobile"],
                "summary": "Add a mobile listing",
                "parameters": [
                    {"description": "Listing", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createMobileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/mobile/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["mobile"],
                "summary": "Get a mobile by id",
                "parameters": [{"type": "string", "description": "Mobile id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Mobile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mobile"],
                "summary": "Update a mobile listing",
                "parameters": [
                    {"type": "string", "description": "Mobile id", "name": "id", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateMobileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["mobile"],
                "summary": "Delete a mobile listing",
                "parameters": [{"type": "string", "description": "Mobile id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Mobile": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "availableQuantity": {"type": "integer"},
                "brand": {"type": "string"},
                "description": {"type": "string"},
                "mobilePrice": {"type": "number"},
                "model": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "mobileNumber": {"type": "string"},
                "role": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "handler.catalogRequest": {
            "type": "object",
            "properties": {"searchValue": {"type": "string"}, "sortValue": {"type": "integer"}}
        },
        "handler.sellerListRequest": {
            "type": "object",
            "properties": {"searchValue": {"type": "string"}, "sortValue": {"type": "integer"}, "userId": {"type": "string"}}
        },
        "handler.createMobileRequest": {
            "type": "object",
            "required": ["brand", "description", "model"],
            "properties": {
                "availableQuantity": {"type": "integer", "minimum": 0},
                "brand": {"type": "string"},
                "description": {"type": "string"},
                "mobilePrice": {"type": "number", "maximum": 1000000, "minimum": 1000},
                "model": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "handler.updateMobileRequest": {
            "type": "object",
            "properties": {
                "availableQuantity": {"type": "integer", "minimum": 0},
                "brand": {"type": "string"},
                "description": {"type": "string"},
                "mobilePrice": {"type": "number", "maximum": 1000000, "minimum": 1000},
                "model": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/handler.loginUser"}}
        },
        "handler.loginUser": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "firstName", "lastName", "mobileNumber", "password", "role"],
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "mobileNumber": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["buyer", "seller"]}
            }
        },
        "handlers.dependencyStatus": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "status": {"type": "string"}}
        },
        "handlers.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handlers.dependencyStatus"}},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token issued by /user/login. The bare token is also accepted.",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Mobile Marketplace API",
	Description:      "Sellers list mobile phones; buyers browse them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
