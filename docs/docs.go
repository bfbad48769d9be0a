// Package docs registers the swagger document served by the swagger UI.
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
        "/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place a new order",
                "responses": {
                    "201": {"description": "Order placed"},
                    "400": {"description": "Invalid order data"}
                }
            }
        },
        "/orders/admin-paging": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders (admin, shipper)",
                "parameters": [
                    {"type": "integer", "name": "pageNumber", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"},
                    {"type": "string", "name": "keyWord", "in": "query"},
                    {"type": "string", "name": "state", "in": "query"},
                    {"type": "string", "name": "customerId", "in": "query"},
                    {"type": "string", "name": "fromDate", "in": "query"},
                    {"type": "string", "name": "toDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "A page of orders"},
                    "403": {"description": "Staff role required"}
                }
            }
        },
        "/orders/user-paging": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the caller's own orders",
                "parameters": [
                    {"type": "integer", "name": "pageNumber", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"},
                    {"type": "string", "name": "keyWord", "in": "query"},
                    {"type": "string", "name": "state", "in": "query"},
                    {"type": "string", "name": "fromDate", "in": "query"},
                    {"type": "string", "name": "toDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "A page of the caller's orders"}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order by id",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "The order"},
                    "404": {"description": "Order not found"}
                }
            }
        },
        "/orders/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Update order status (admin, shipper)",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Status updated"},
                    "409": {"description": "Transition not allowed"}
                }
            }
        },
        "/orders/cancel": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Request cancellation of an own order",
                "responses": {
                    "200": {"description": "Cancellation request recorded"},
                    "403": {"description": "Order belongs to another customer"},
                    "409": {"description": "Order is not in a cancellable status"}
                }
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

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Order Management API",
	Description:      "Order placement, status management and cancellation requests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
