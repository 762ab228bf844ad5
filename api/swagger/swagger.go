package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Missing Persons API",
        "description": "Read access to the missing-persons registry with fallback data, and citizen report submission",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Persons", "description": "Missing and located persons"},
        {"name": "History", "description": "Citizen reports attached to a case"},
        {"name": "Reports", "description": "Submitting new information about a case"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/persons": {
            "get": {
                "tags": ["Persons"],
                "summary": "List persons",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["missing", "located"]},
                    {"name": "sex", "in": "query", "type": "string", "enum": ["male", "female"]},
                    {"name": "age_min", "in": "query", "type": "integer", "minimum": 0},
                    {"name": "age_max", "in": "query", "type": "integer", "minimum": 0},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1, "description": "Pages past the end return the last page"},
                    {"name": "filter_key", "in": "query", "type": "string", "description": "meta.filter_key of the previous page; a mismatch resets to page 1"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "No source available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/persons/{id}": {
            "get": {
                "tags": ["Persons"],
                "summary": "Person detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "No source available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/persons/{id}/history": {
            "get": {
                "tags": ["History"],
                "summary": "Case history, newest first, four entries per page",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "start", "in": "query", "type": "string", "format": "date"},
                    {"name": "end", "in": "query", "type": "string", "format": "date"},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1, "description": "Pages past the end return the last page"},
                    {"name": "filter_key", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid date or start after end", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "No source available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/persons/{id}/history/export": {
            "get": {
                "tags": ["History"],
                "summary": "Download the filtered history",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "start", "in": "query", "type": "string", "format": "date"},
                    {"name": "end", "in": "query", "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Invalid date, start after end or unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "No source available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cases/{caseId}/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Send new information about a case",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "caseId", "in": "path", "required": true, "type": "integer"},
                    {"name": "text", "in": "formData", "required": true, "type": "string"},
                    {"name": "sighting_date", "in": "formData", "required": true, "type": "string", "description": "DD/MM/YYYY or YYYY-MM-DD"},
                    {"name": "photo_caption", "in": "formData", "type": "string"},
                    {"name": "photo", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Accepted by the registry", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Registry rejected the report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Reports"],
                "summary": "Submission attempts logged for a case",
                "parameters": [
                    {"name": "caseId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Submission log disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseMeta": {
            "type": "object",
            "properties": {
                "source": {"type": "string", "enum": ["primary", "fallback"]},
                "warning": {"type": "string"},
                "cache_hit": {"type": "boolean"},
                "filter_key": {"type": "string"},
                "page_window": {"type": "array", "items": {}, "description": "page numbers, with \"...\" marking gaps"},
                "processing_time_ms": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"$ref": "#/definitions/ResponseMeta"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
