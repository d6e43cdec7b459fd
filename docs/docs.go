// Package docs - Swagger документация What's On API (формат swag init)
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
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка состояния сервиса",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Locations"],
                "summary": "Список городов",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LocationsResponse"}}
                }
            }
        },
        "/api/v1/location": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Locations"],
                "summary": "Выбор города",
                "parameters": [
                    {"description": "Город", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectLocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FeedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Лента событий",
                "parameters": [
                    {"type": "string", "description": "Тип события (без учёта регистра)", "name": "type", "in": "query"},
                    {"type": "string", "description": "День (YYYY-MM-DD)", "name": "date", "in": "query"},
                    {"type": "string", "description": "Начало диапазона включительно (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "Конец диапазона включительно (YYYY-MM-DD)", "name": "to", "in": "query"},
                    {"enum": ["children", "adults"], "type": "string", "description": "Возрастная категория", "name": "age", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FeedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/venues": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Venues"],
                "summary": "Площадки города",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.VenueListResponse"}}
                }
            }
        },
        "/api/v1/venues/{id}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Venues"],
                "summary": "Переключение площадки",
                "parameters": [
                    {"type": "integer", "description": "ID площадки", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.VenueListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.SelectLocationRequest": {
            "type": "object",
            "required": ["location"],
            "properties": {"location": {"type": "string", "maxLength": 100}}
        },
        "dto.LocationsResponse": {
            "type": "object",
            "properties": {
                "locations": {"type": "array", "items": {"type": "string"}},
                "selected": {"type": "string"}
            }
        },
        "dto.EventItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "start": {"type": "string"},
                "type": {"type": "string"},
                "description": {"type": "string"},
                "url": {"type": "string"},
                "venue_id": {"type": "integer"},
                "venue_name": {"type": "string"},
                "photo_url": {"type": "string"},
                "age": {"type": "string"}
            }
        },
        "dto.FeedResponse": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "state": {"type": "string", "enum": ["idle", "loading", "ready", "empty", "error"]},
                "events": {"type": "array", "items": {"$ref": "#/definitions/dto.EventItem"}},
                "types": {"type": "array", "items": {"type": "string"}},
                "total": {"type": "integer"},
                "error": {"type": "string"},
                "stale": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.VenueItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "address": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "dto.VenueListResponse": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "state": {"type": "string"},
                "venues": {"type": "array", "items": {"$ref": "#/definitions/dto.VenueItem"}}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/errors.AppError"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "What's On API",
	Description:      "Агрегация событий и площадок выбранного города с фильтрацией и блокировкой площадок.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
