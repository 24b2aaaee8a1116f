// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/rooms": {
            "get": {
                "description": "Filter, sort and paginate the room catalog in a single request",
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"type": "string", "description": "Search text matched against title, description and amenities", "name": "search", "in": "query"},
                    {"type": "string", "description": "Lowest nightly price", "name": "minPrice", "in": "query"},
                    {"type": "string", "description": "Highest nightly price", "name": "maxPrice", "in": "query"},
                    {"type": "string", "description": "Minimum number of guests", "name": "capacity", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Required amenities", "name": "amenities", "in": "query"},
                    {"type": "boolean", "description": "Only bookable rooms", "name": "available", "in": "query"},
                    {"type": "boolean", "description": "Only featured rooms", "name": "featured", "in": "query"},
                    {"enum": ["price-asc", "price-desc", "capacity", "size", "name"], "type": "string", "description": "Sort option", "name": "sortBy", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size; 0 disables pagination", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RoomListResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "description": "Start a stateful listing. Query parameters copied from a share URL (page, pageSize, state) restore that listing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Create a filter session",
                "parameters": [
                    {"description": "Initial filters and sort", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/http.CreateSessionRequest"}},
                    {"type": "integer", "description": "Page from a share URL", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size from a share URL", "name": "pageSize", "in": "query"},
                    {"type": "string", "description": "State key from a share URL", "name": "state", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorDetail"}},
                    "503": {"description": "Session limit reached", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "description": "Returns the current listing. With settle=true pending search and filter work is applied first.",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get a session's listing",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "End a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}/filters": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Set one filter",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"},
                    {"description": "Filter key and value", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateFilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorDetail"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Clear all filters",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}/search": {
            "put": {
                "description": "The text is applied after the search debounce period unless settle=true.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Set the search text",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"},
                    {"description": "Search text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/response.ErrorDetail"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}/price": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Set the price range",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"},
                    {"description": "Price bounds", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PriceRangeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/response.ErrorDetail"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}/amenities/{name}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Toggle a required amenity",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Amenity name", "name": "name", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}/sort": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Set the sort option",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"},
                    {"description": "Sort option", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SortRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorDetail"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        },
        "/sessions/{id}/page": {
            "put": {
                "description": "Changing the page size returns to page 1 unless a page is given too.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Change page or page size",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Apply pending work before responding", "name": "settle", "in": "query"},
                    {"description": "Page and page size", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorDetail"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/response.ErrorDetail"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Room": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "deluxe-suite"},
                "title": {"type": "string", "example": "Deluxe Suite"},
                "description": {"type": "string"},
                "size": {"type": "string", "example": "45 m²"},
                "price": {"type": "number", "example": 250},
                "capacity": {"type": "integer", "example": 2},
                "amenities": {"type": "array", "items": {"type": "string"}},
                "available": {"type": "boolean"},
                "featured": {"type": "boolean"}
            }
        },
        "domain.RoomFilters": {
            "type": "object",
            "properties": {
                "search": {"type": "string"},
                "minPrice": {"type": "string"},
                "maxPrice": {"type": "string"},
                "capacity": {"type": "string"},
                "amenities": {"type": "array", "items": {"type": "string"}},
                "available": {"type": "boolean"},
                "featured": {"type": "boolean"}
            }
        },
        "domain.FilterStats": {
            "type": "object",
            "properties": {
                "activeFilters": {"type": "integer"},
                "hasActiveFilters": {"type": "boolean"},
                "matchingRooms": {"type": "integer"},
                "totalRooms": {"type": "integer"},
                "isFiltered": {"type": "boolean"}
            }
        },
        "domain.PageInfo": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "domain.RoomListResponse": {
            "type": "object",
            "properties": {
                "filters": {"$ref": "#/definitions/domain.RoomFilters"},
                "sortBy": {"type": "string", "enum": ["", "price-asc", "price-desc", "capacity", "size", "name"]},
                "stats": {"$ref": "#/definitions/domain.FilterStats"},
                "pagination": {"$ref": "#/definitions/domain.PageInfo"},
                "isFiltering": {"type": "boolean"},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/domain.Room"}}
            }
        },
        "http.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "7f9c0e4e-3c1f-4d8e-9a57-1e8f0d6c2b11"},
                "url": {"type": "string", "example": "/rooms?page=1&pageSize=10&state=rooms%3A7f9c0e4e-3c1f-4d8e-9a57-1e8f0d6c2b11"},
                "filters": {"$ref": "#/definitions/domain.RoomFilters"},
                "sortBy": {"type": "string"},
                "stats": {"$ref": "#/definitions/domain.FilterStats"},
                "pagination": {"$ref": "#/definitions/domain.PageInfo"},
                "isFiltering": {"type": "boolean"},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/domain.Room"}}
            }
        },
        "http.CreateSessionRequest": {
            "type": "object",
            "properties": {
                "filters": {"$ref": "#/definitions/domain.RoomFilters"},
                "sortBy": {"type": "string", "example": "price-asc"},
                "pageSize": {"type": "integer", "example": 10},
                "resume": {"type": "string"}
            }
        },
        "http.UpdateFilterRequest": {
            "type": "object",
            "properties": {
                "key": {"type": "string", "example": "capacity"},
                "value": {"type": "string", "example": "4"}
            }
        },
        "http.SearchRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "suite"}
            }
        },
        "http.PriceRangeRequest": {
            "type": "object",
            "properties": {
                "min": {"type": "string", "example": "100"},
                "max": {"type": "string", "example": "300"}
            }
        },
        "http.SortRequest": {
            "type": "object",
            "properties": {
                "sortBy": {"type": "string", "example": "name"}
            }
        },
        "http.PageRequest": {
            "type": "object",
            "properties": {
                "page": {"type": "integer", "example": 2},
                "pageSize": {"type": "integer", "example": 10}
            }
        },
        "response.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Room Filter API",
	Description:      "Filter, sort and paginate a hotel room catalog, statelessly or through debounced per-visitor sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
