// Package docs Inverse Zastavky API.
//
// Обратное геокодирование остановок: цепочки остановок из NeTEx,
// восстановление пути цепочки по городам и по станциям, редактор станций.
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
            "get": {"tags": ["Health"], "summary": "Состояние сервиса", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "База данных недоступна"}}}
        },
        "/api/v1/chains": {
            "get": {"tags": ["Chains"], "summary": "Список цепочек", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Позиций на странице (<= 50)", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Номер страницы", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/chains/{hash}": {
            "get": {"tags": ["Chains"], "summary": "Цепочка по хешу", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Хеш цепочки (URL-кодированный)", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/chains/{hash}/locate/station": {
            "post": {"tags": ["Chains"], "summary": "Привязать позицию к станции", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "hash", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LocateStationRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/chains/{hash}/locate/point": {
            "post": {"tags": ["Chains"], "summary": "Создать станцию в точке и привязать позицию", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "hash", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LocatePointRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/chains/{hash}/suggest/cities": {
            "get": {"tags": ["Suggest"], "summary": "Варианты пути по городам", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "hash", "in": "path", "required": true},
                    {"type": "integer", "description": "Максимум вариантов (0 - все)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/chains/{hash}/suggest/stations": {
            "get": {"tags": ["Suggest"], "summary": "Варианты пути по станциям", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "hash", "in": "path", "required": true},
                    {"type": "integer", "description": "Максимум вариантов (0 - все)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/stations": {
            "get": {"tags": ["Stations"], "summary": "Станции в прямоугольнике", "produces": ["application/json"],
                "parameters": [
                    {"type": "number", "name": "lat_from", "in": "query", "required": true},
                    {"type": "number", "name": "lat_to", "in": "query", "required": true},
                    {"type": "number", "name": "lon_from", "in": "query", "required": true},
                    {"type": "number", "name": "lon_to", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["Stations"], "summary": "Создать станцию", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateStationRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/stations/search": {
            "get": {"tags": ["Stations"], "summary": "Поиск станций по имени", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/stations/{id}": {
            "get": {"tags": ["Stations"], "summary": "Станция по stop_id", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Stations"], "summary": "Удалить станцию",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/stations/{id}/position": {
            "patch": {"tags": ["Stations"], "summary": "Переместить станцию", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.MoveStationRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/stations/{id}/names": {
            "post": {"tags": ["Stations"], "summary": "Добавить имя станции", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StationNameRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Stations"], "summary": "Удалить имя станции", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "name", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/base/stations": {
            "get": {"tags": ["Base"], "summary": "Опорные станции в прямоугольнике", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/base/cities": {
            "get": {"tags": ["Base"], "summary": "Поиск населённых пунктов", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/other/stats": {
            "get": {"tags": ["Statistics"], "summary": "Статистика", "produces": ["application/json"],
                "parameters": [{"type": "boolean", "description": "Пересчитать, минуя кеш", "name": "refresh", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/other/city-remap": {
            "get": {"tags": ["Base"], "summary": "Переименования городов", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/imports": {
            "post": {"tags": ["Imports"], "summary": "Поставить импорт в очередь", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ImportRequest"}}],
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "dto.LocateStationRequest": {"type": "object", "properties": {"pos": {"type": "integer"}, "stop_id": {"type": "string"}}},
        "dto.LocatePointRequest": {"type": "object", "properties": {"pos": {"type": "integer"}, "lat": {"type": "number"}, "lon": {"type": "number"}}},
        "dto.CreateStationRequest": {"type": "object", "properties": {"name": {"type": "string"}, "lat": {"type": "number"}, "lon": {"type": "number"}}},
        "dto.MoveStationRequest": {"type": "object", "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}},
        "dto.StationNameRequest": {"type": "object", "properties": {"name": {"type": "string"}}},
        "dto.ImportRequest": {"type": "object", "properties": {"kind": {"type": "string", "enum": ["netex", "base_stations", "base_cities"]}, "path": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Inverse Zastavky API",
	Description:      "Обратное геокодирование остановок по цепочкам NeTEx",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
