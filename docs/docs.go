// Package docs holds the Swagger document served at /swagger, kept in step
// with the handler annotations.
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
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LoginResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Audit trail",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AuditListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/publication/publications/top": {
            "get": {
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Top publications",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Publication"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/email/{email}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Publications by author",
                "parameters": [
                    {"type": "string", "description": "author email", "name": "email", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Publication"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/aleatory/{pag}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "like: score, user: author, date: newest first, aleatory: random, userQuantity: most prolific authors",
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "List publications by sort order",
                "parameters": [
                    {"type": "integer", "description": "page number, starting at 1", "name": "pag", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicationPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/date/{pag}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "like: score, user: author, date: newest first, aleatory: random, userQuantity: most prolific authors",
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "List publications by sort order",
                "parameters": [
                    {"type": "integer", "description": "page number, starting at 1", "name": "pag", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicationPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/like/{pag}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "like: score, user: author, date: newest first, aleatory: random, userQuantity: most prolific authors",
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "List publications by sort order",
                "parameters": [
                    {"type": "integer", "description": "page number, starting at 1", "name": "pag", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicationPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/user/{pag}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "like: score, user: author, date: newest first, aleatory: random, userQuantity: most prolific authors",
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "List publications by sort order",
                "parameters": [
                    {"type": "integer", "description": "page number, starting at 1", "name": "pag", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicationPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/userQuantity/{pag}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "like: score, user: author, date: newest first, aleatory: random, userQuantity: most prolific authors",
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "List publications by sort order",
                "parameters": [
                    {"type": "integer", "description": "page number, starting at 1", "name": "pag", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicationPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Pending publications",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Publication"}}}
                }
            }
        },
        "/v1/publication/save": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Create a publication",
                "parameters": [
                    {"description": "publication", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PublicationInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Publication"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/update": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Update a publication",
                "parameters": [
                    {"description": "publication", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PublicationInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Publication"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Get a publication",
                "parameters": [
                    {"type": "integer", "description": "publication id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicationDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/v1/publication/{id}/image": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Publication image URL",
                "parameters": [
                    {"type": "integer", "description": "publication id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["publication"],
                "summary": "Upload a publication image",
                "parameters": [
                    {"type": "integer", "description": "publication id", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "image", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Publication"}}
                }
            }
        },
        "/v1/user/userSession": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.AuditLog": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "created_at": {"type": "string"},
                "endpoint": {"type": "string"},
                "id": {"type": "integer"},
                "ip": {"type": "string"},
                "method": {"type": "string"},
                "status": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "model.Publication": {
            "type": "object",
            "properties": {
                "author_id": {"type": "integer"},
                "content": {"type": "string"},
                "id": {"type": "integer"},
                "image_path": {"type": "string"},
                "plantation_id": {"type": "integer"},
                "publication_date": {"type": "string"},
                "score": {"type": "integer"},
                "state_id": {"type": "integer"},
                "title": {"type": "string"},
                "visibility": {"type": "boolean"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "last_name": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "service.AuditListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.AuditLog"}},
                "total": {"type": "integer"}
            }
        },
        "service.LoginResult": {
            "type": "object",
            "properties": {
                "expires_in": {"type": "integer"},
                "token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "service.PublicationPage": {
            "type": "object",
            "properties": {
                "pagination": {"type": "integer"},
                "publications": {"type": "array", "items": {"$ref": "#/definitions/model.Publication"}}
            }
        },
        "service.PublicationDetail": {
            "type": "object",
            "properties": {
                "author_id": {"type": "integer"},
                "content": {"type": "string"},
                "id": {"type": "integer"},
                "image_path": {"type": "string"},
                "plantation_id": {"type": "integer"},
                "publication_date": {"type": "string"},
                "score": {"type": "integer"},
                "state_id": {"type": "integer"},
                "title": {"type": "string"},
                "user_vote": {"type": "boolean"},
                "visibility": {"type": "boolean"}
            }
        },
        "service.PublicationInput": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "id": {"type": "integer"},
                "plantation_id": {"type": "integer"},
                "title": {"type": "string"},
                "visibility": {"type": "boolean"}
            }
        },
        "service.RegisterInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "last_name": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Agro Publications API",
	Description:      "Plantation publications, users and audit trail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
