// Package docs holds the hand-maintained OpenAPI description served at
// /swagger. It lists the routes and their security; request and response
// schemas are documented by the handler annotations and /api/docs.
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
                "tags": ["service"],
                "summary": "Welcome banner",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/docs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["service"],
                "summary": "Endpoint catalogue",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new diner",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get the authenticated user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user/{userId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Update user",
                "parameters": [{"type": "integer", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Delete user",
                "parameters": [{"type": "integer", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/franchise": {
            "get": {
                "produces": ["application/json"],
                "tags": ["franchise"],
                "summary": "List franchises",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["franchise"],
                "summary": "Create franchise",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/franchise/{userId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["franchise"],
                "summary": "List a user's franchises",
                "parameters": [{"type": "integer", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/franchise/{franchiseId}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["franchise"],
                "summary": "Delete franchise",
                "parameters": [{"type": "integer", "name": "franchiseId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/franchise/{franchiseId}/store": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["franchise"],
                "summary": "Create store",
                "parameters": [{"type": "integer", "name": "franchiseId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/franchise/{franchiseId}/store/{storeId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["franchise"],
                "summary": "Delete store",
                "parameters": [{"type": "integer", "name": "franchiseId", "in": "path", "required": true}, {"type": "integer", "name": "storeId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/order/menu": {
            "get": {
                "produces": ["application/json"],
                "tags": ["order"],
                "summary": "Get the menu",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["order"],
                "summary": "Add menu item",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/order": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["order"],
                "summary": "List the caller's orders",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["order"],
                "summary": "Create order",
                "responses": {"200": {"description": "OK"}}
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
	Version:          "dev",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "JWT Pizza Service API",
	Description:      "Pizza storefront API: accounts, franchises, menu and orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
