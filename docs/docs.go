// Package docs holds the swagger document served on /swagger. It mirrors
// the swag annotations on main.go and the lib/api handlers; keep both in
// step when a route changes.
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
        "/api/{kind}/chains": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Create a chain",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/{kind}/chains/{chainId}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Get a chain",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Delete a chain",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/chains/{chainId}/revisions": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Submit a revision",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/{kind}/chains/{chainId}/history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Chain history",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of revisions",
                        "name": "limit",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/chains/{chainId}/promote/{nodeId}": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Promote a revision",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Revision ID",
                        "name": "nodeId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/chains/{chainId}/rewind/{nodeId}": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Rewind a chain",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Revision ID",
                        "name": "nodeId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/diff/{fromId}/{toId}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Diff two revisions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Older revision ID",
                        "name": "fromId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Newer revision ID",
                        "name": "toId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/diff.Result"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/visible": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Published content",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Language code",
                        "name": "language",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object"
                            }
                        }
                    }
                }
            }
        },
        "/api/{kind}/pending": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Moderation"
                ],
                "summary": "Moderation queue",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object"
                            }
                        }
                    }
                }
            }
        },
        "/api/{kind}/revisions/{nodeId}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Get a revision",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Revision ID",
                        "name": "nodeId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/revisions/{nodeId}/next": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Successor of a revision",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Revision ID",
                        "name": "nodeId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "204": {
                        "description": "Revision is the newest of its chain"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/revisions/{nodeId}/confirm-deletion": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Moderation"
                ],
                "summary": "Confirm a deletion request",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Revision ID",
                        "name": "nodeId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/moderation.Removal"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/{kind}/revisions/{nodeId}/{action}": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Moderation"
                ],
                "summary": "Change moderation status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "tag",
                            "waypoint",
                            "media",
                            "static"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Revision ID",
                        "name": "nodeId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Action",
                        "name": "action",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "approve",
                            "reject",
                            "request-deletion",
                            "decline-deletion"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/content.StatusResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                }
            }
        },
        "/api/languages": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Languages"
                ],
                "summary": "List languages",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/languages.Language"
                            }
                        }
                    }
                }
            }
        },
        "/api/languages/{code}": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Languages"
                ],
                "summary": "Create or update a language",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Language code",
                        "name": "code",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Acting user",
                        "name": "X-Author-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Language",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/languages.SaveLanguageRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/languages.Language"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/errors.Error"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Health check endpoint",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "$ref": "#/definitions/stats.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service is unhealthy",
                        "schema": {
                            "$ref": "#/definitions/stats.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "errors.Error": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "chain with id '42' does not exist"
                },
                "error": {
                    "type": "integer",
                    "example": 404
                },
                "code": {
                    "type": "string",
                    "example": "NOT_FOUND"
                },
                "field": {
                    "type": "string",
                    "example": "title"
                }
            }
        },
        "diff.Span": {
            "type": "object",
            "properties": {
                "op": {
                    "type": "string"
                },
                "tokens": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "diff.TextDiff": {
            "type": "object",
            "properties": {
                "spans": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/diff.Span"
                    }
                }
            }
        },
        "diff.SetDiff": {
            "type": "object",
            "properties": {
                "equal": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "inserted": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "deleted": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "diff.Result": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/diff.TextDiff"
                    }
                },
                "lists": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/diff.SetDiff"
                    }
                }
            }
        },
        "moderation.Removal": {
            "type": "object",
            "properties": {
                "chainId": {
                    "type": "string"
                },
                "chainDeleted": {
                    "type": "boolean"
                },
                "currentId": {
                    "type": "string"
                }
            }
        },
        "content.StatusResponse": {
            "type": "object",
            "properties": {
                "nodeId": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "verified",
                        "deleteRequested",
                        "rejected"
                    ]
                }
            }
        },
        "languages.Language": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "active": {
                    "type": "boolean"
                }
            }
        },
        "languages.SaveLanguageRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "active": {
                    "type": "boolean"
                }
            }
        },
        "stats.Check": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "component": {
                    "type": "string"
                },
                "observedValue": {},
                "observedAt": {
                    "type": "string"
                },
                "output": {
                    "type": "string"
                }
            }
        },
        "stats.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "releaseId": {
                    "type": "string"
                },
                "serviceId": {
                    "type": "string"
                },
                "checks": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "$ref": "#/definitions/stats.Check"
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Geo Content API",
	Description:      "Versioned, moderated geo content: tags, waypoints, media and static pages.\nEvery edit is appended to a revision chain and becomes visible after approval.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
