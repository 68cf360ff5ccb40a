// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/seasons": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Seasons"],
                "summary": "List seasons",
                "responses": {
                    "200": {"description": "Season labels, newest first", "schema": {"type": "array", "items": {"type": "string"}}},
                    "500": {"description": "Internal Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/seasons/{season}/rankings": {
            "get": {
                "description": "Players ranked by swish score, sorted for display, with formatted and heat-colored cells",
                "produces": ["application/json"],
                "tags": ["Seasons"],
                "summary": "Season rankings table",
                "parameters": [
                    {"type": "string", "description": "Season label (e.g. 2024-25)", "name": "season", "in": "path", "required": true},
                    {"type": "string", "description": "Field to sort by (e.g. points, turnovers, swish_score)", "name": "sort", "in": "query"},
                    {"type": "string", "description": "Sort direction (asc, desc); defaults per field", "name": "dir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RankingTable"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Season not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/seasons/{season}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Seasons"],
                "summary": "Season stats",
                "parameters": [
                    {"type": "string", "description": "Season label (e.g. 2024-25)", "name": "season", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RankedRecord"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Season not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/players/{playerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Player profile",
                "parameters": [
                    {"type": "string", "description": "Player UUID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PlayerProfile"}},
                    "400": {"description": "Invalid player id", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Player not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/players/{playerID}/details": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Player details",
                "parameters": [
                    {"type": "string", "description": "Player UUID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PlayerDetails"}},
                    "400": {"description": "Invalid player id", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Player not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/players/{playerID}/gamelogs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Player game logs",
                "parameters": [
                    {"type": "string", "description": "Player UUID", "name": "playerID", "in": "path", "required": true},
                    {"type": "string", "description": "Season label (e.g. 2024-25)", "name": "season", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Max games (0 = all)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.GameLog"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/projections": {
            "get": {
                "description": "Projected next-season lines ranked by swish score, rendered like the season rankings",
                "produces": ["application/json"],
                "tags": ["Projections"],
                "summary": "Projections table",
                "parameters": [
                    {"type": "string", "description": "Field to sort by", "name": "sort", "in": "query"},
                    {"type": "string", "description": "Sort direction (asc, desc)", "name": "dir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RankingTable"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/stats/columns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Stat catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TableColumn"}}}
                }
            }
        }
    },
    "definitions": {
        "models.CellStyle": {
            "type": "object",
            "properties": {
                "alpha": {"type": "number"},
                "background": {"type": "string"},
                "channel": {"type": "string"}
            }
        },
        "models.GameLog": {
            "type": "object",
            "properties": {
                "assists": {"type": "integer"},
                "blocks": {"type": "integer"},
                "field_goal_attempts": {"type": "integer"},
                "field_goals_made": {"type": "integer"},
                "free_throw_attempts": {"type": "integer"},
                "free_throws_made": {"type": "integer"},
                "game_date": {"type": "string"},
                "minutes_played": {"type": "number"},
                "opponent": {"type": "string"},
                "player_id": {"type": "string"},
                "plus_minus": {"type": "integer"},
                "points": {"type": "integer"},
                "rebounds": {"type": "integer"},
                "season": {"type": "string"},
                "steals": {"type": "integer"},
                "three_point_attempts": {"type": "integer"},
                "three_pointers_made": {"type": "integer"},
                "turnovers": {"type": "integer"},
                "win_loss": {"type": "string"}
            }
        },
        "models.PlayerDetails": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "player_id": {"type": "string"},
                "player_stats_by_season": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerSeasonRecord"}}
            }
        },
        "models.PlayerProfile": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "game_logs": {"type": "array", "items": {"$ref": "#/definitions/models.GameLog"}},
                "player_id": {"type": "string"},
                "player_stats_by_season": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerSeasonRecord"}}
            }
        },
        "models.PlayerSeasonRecord": {
            "type": "object",
            "properties": {
                "assists": {"type": "number"},
                "avg_minutes": {"type": "number"},
                "blocks": {"type": "number"},
                "field_goal_attempts": {"type": "number"},
                "field_goal_pct": {"type": "number"},
                "field_goals_made": {"type": "number"},
                "free_throw_attempts": {"type": "number"},
                "free_throw_pct": {"type": "number"},
                "free_throws_made": {"type": "number"},
                "games_played": {"type": "integer"},
                "nba_player_id": {"type": "integer"},
                "player_age": {"type": "integer"},
                "player_id": {"type": "string"},
                "player_name": {"type": "string"},
                "points": {"type": "number"},
                "rebounds": {"type": "number"},
                "season": {"type": "string"},
                "steals": {"type": "number"},
                "swish_score": {"type": "number"},
                "team": {"type": "string"},
                "three_point_attempts": {"type": "number"},
                "three_point_pct": {"type": "number"},
                "three_pointers_made": {"type": "number"},
                "true_shooting_pct": {"type": "number"},
                "turnovers": {"type": "number"},
                "usage_rate": {"type": "number"}
            }
        },
        "models.RankedRecord": {
            "allOf": [
                {"$ref": "#/definitions/models.PlayerSeasonRecord"},
                {"type": "object", "properties": {"rank": {"type": "integer"}}}
            ]
        },
        "models.RankingTable": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"$ref": "#/definitions/models.TableColumn"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/models.TableRow"}},
                "season": {"type": "string"},
                "sort": {"$ref": "#/definitions/models.SortDirective"},
                "total": {"type": "integer"}
            }
        },
        "models.SortDirective": {
            "type": "object",
            "properties": {
                "direction": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "models.TableCell": {
            "type": "object",
            "properties": {
                "display": {"type": "string"},
                "key": {"type": "string"},
                "style": {"$ref": "#/definitions/models.CellStyle"},
                "value": {}
            }
        },
        "models.TableColumn": {
            "type": "object",
            "properties": {
                "default_direction": {"type": "string"},
                "key": {"type": "string"},
                "kind": {"type": "string"},
                "label": {"type": "string"},
                "sortable": {"type": "boolean"}
            }
        },
        "models.TableRow": {
            "type": "object",
            "properties": {
                "cells": {"type": "array", "items": {"$ref": "#/definitions/models.TableCell"}},
                "player_id": {"type": "string"},
                "rank": {"type": "integer"}
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
	Title:            "Swish Stats API",
	Description:      "Season rankings, player history, game logs and projections for fantasy basketball.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
