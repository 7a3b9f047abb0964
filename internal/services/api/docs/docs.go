// Package docs holds the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/meta/health": {
      "get": {
        "tags": ["Meta"],
        "summary": "Health check",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}}}
      }
    },
    "/meta/ready": {
      "get": {
        "tags": ["Meta"],
        "summary": "Readiness probe with executor checks",
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}},
          "503": {"description": "an executor is unreachable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      }
    },
    "/meta/version": {
      "get": {
        "tags": ["Meta"],
        "summary": "Build and version info",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BuildInfo"}}}}}
      }
    },
    "/meta/service": {
      "get": {
        "tags": ["Meta"],
        "summary": "Service info and uptime",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ServiceResponse"}}}}}
      }
    },
    "/meta/catalog": {
      "get": {
        "tags": ["Meta"],
        "summary": "Filter labels for the report form",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CatalogResponse"}}}}}
      }
    },
    "/meta/calendar": {
      "get": {
        "tags": ["Meta"],
        "summary": "Season and holiday of a date",
        "parameters": [
          {"name": "date", "in": "query", "required": false, "description": "Day as YYYY-MM-DD, defaults to today", "schema": {"type": "string", "example": "2024-11-28"}}
        ],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CalendarResponse"}}}}}
      }
    },
    "/meta/regions": {
      "get": {
        "tags": ["Meta"],
        "summary": "Map regions with centers, outlines and colour scale",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegionsResponse"}}}}}
      }
    },
    "/reports/{report}": {
      "get": {
        "tags": ["Reports"],
        "summary": "Run a dashboard report from query parameters",
        "operationId": "runReport",
        "parameters": [
          {"$ref": "#/components/parameters/report"},
          {"name": "crimeCategories", "in": "query", "explode": true, "schema": {"type": "array", "items": {"type": "string"}}},
          {"name": "laRegions", "in": "query", "explode": true, "schema": {"type": "array", "items": {"type": "string"}}},
          {"name": "startDate", "in": "query", "schema": {"type": "string", "example": "2024-01-01"}},
          {"name": "endDate", "in": "query", "schema": {"type": "string", "example": "2024-03-31"}},
          {"name": "ageRange", "in": "query", "schema": {"type": "string", "example": "19-30"}},
          {"name": "gender", "in": "query", "schema": {"type": "string", "example": "Female"}},
          {"name": "descent", "in": "query", "explode": true, "schema": {"type": "array", "items": {"type": "string"}}},
          {"name": "eventPeriodStart", "in": "query", "schema": {"type": "string"}},
          {"name": "eventPeriodEnd", "in": "query", "schema": {"type": "string"}},
          {"name": "monthsBeforeEvent", "in": "query", "schema": {"type": "string", "example": "3"}},
          {"name": "monthsAfterEvent", "in": "query", "schema": {"type": "string", "example": "3"}},
          {"name": "season", "in": "query", "schema": {"type": "string", "enum": ["season", "holiday"]}},
          {"name": "seasons", "in": "query", "explode": true, "schema": {"type": "array", "items": {"type": "string", "enum": ["Spring", "Summer", "Fall", "Winter"]}}},
          {"name": "holidays", "in": "query", "explode": true, "schema": {"type": "array", "items": {"type": "string", "enum": ["StPatricksDay", "July4th", "Thanksgiving", "Christmas", "NewYears"]}}},
          {"name": "timeGranularity", "in": "query", "schema": {"type": "string", "enum": ["Year", "Quarter", "Month"]}}
        ],
        "responses": {
          "200": {"$ref": "#/components/responses/Report"},
          "404": {"$ref": "#/components/responses/Error"},
          "502": {"$ref": "#/components/responses/Error"},
          "503": {"$ref": "#/components/responses/Error"}
        }
      },
      "post": {
        "tags": ["Reports"],
        "summary": "Run a dashboard report from a JSON body",
        "operationId": "runReportJSON",
        "parameters": [{"$ref": "#/components/parameters/report"}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Params"}}}},
        "responses": {
          "200": {"$ref": "#/components/responses/Report"},
          "404": {"$ref": "#/components/responses/Error"},
          "502": {"$ref": "#/components/responses/Error"},
          "503": {"$ref": "#/components/responses/Error"}
        }
      }
    }
  },
  "components": {
    "parameters": {
      "report": {
        "name": "report", "in": "path", "required": true,
        "schema": {"type": "string", "enum": ["crime-type", "geographic", "demographic", "external-events", "long-term", "seasonal"]}
      }
    },
    "responses": {
      "Report": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Report"}}}},
      "Error": {"description": "error envelope, failed reports keep data", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
    },
    "schemas": {
      "ErrorResponse": {
        "type": "object",
        "properties": {
          "status_code": {"type": "integer"},
          "status": {"type": "string"},
          "code": {"type": "integer"},
          "error": {"type": "string"},
          "request_id": {"type": "string"},
          "data": {"$ref": "#/components/schemas/Report"}
        },
        "required": ["status_code", "status"]
      },
      "Params": {
        "type": "object",
        "properties": {
          "crimeCategories": {"type": "array", "items": {"type": "string"}, "maxItems": 16},
          "laRegions": {"type": "array", "items": {"type": "string"}, "maxItems": 16},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "ageRange": {"type": "string"},
          "gender": {"type": "string"},
          "descent": {"type": "array", "items": {"type": "string"}, "maxItems": 16},
          "eventPeriodStart": {"type": "string"},
          "eventPeriodEnd": {"type": "string"},
          "monthsBeforeEvent": {"type": "string"},
          "monthsAfterEvent": {"type": "string"},
          "season": {"type": "string"},
          "seasons": {"type": "array", "items": {"type": "string"}, "maxItems": 8},
          "holidays": {"type": "array", "items": {"type": "string"}, "maxItems": 8},
          "timeGranularity": {"type": "string"}
        }
      },
      "Issue": {
        "type": "object",
        "properties": {"kind": {"type": "string"}, "field": {"type": "string"}, "value": {"type": "string"}}
      },
      "Report": {
        "type": "object",
        "properties": {
          "report_id": {"type": "string", "format": "uuid"},
          "report": {"type": "string"},
          "state": {"type": "string", "enum": ["ok", "empty", "failed"]},
          "formParams": {"$ref": "#/components/schemas/Params"},
          "criteria": {"type": "object"},
          "warnings": {"type": "array", "items": {"$ref": "#/components/schemas/Issue"}},
          "query": {
            "type": "object",
            "properties": {"dialect": {"type": "string"}, "sql": {"type": "string"}, "args": {"type": "array", "items": {}}}
          },
          "result": {
            "type": "object",
            "properties": {
              "rows": {"type": "array", "items": {"type": "object"}},
              "rowsAffected": {"type": "integer"},
              "columns": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      },
      "HealthResponse": {
        "type": "object",
        "properties": {"ok": {"type": "boolean"}, "service": {"type": "string"}, "started": {"type": "string"}, "now": {"type": "string"}}
      },
      "ReadyResponse": {
        "type": "object",
        "properties": {
          "status": {"type": "string", "enum": ["ok", "degraded", "fail"]},
          "checks": {"type": "array", "items": {"type": "object", "properties": {"name": {"type": "string"}, "status": {"type": "string"}, "error": {"type": "string"}}}},
          "now": {"type": "string"}
        }
      },
      "BuildInfo": {
        "type": "object",
        "properties": {"service": {"type": "string"}, "version": {"type": "string"}, "commit": {"type": "string"}, "date": {"type": "string"}}
      },
      "ServiceResponse": {
        "type": "object",
        "properties": {"name": {"type": "string"}, "started": {"type": "string"}, "uptime": {"type": "integer"}}
      },
      "CatalogResponse": {
        "type": "object",
        "properties": {
          "reports": {"type": "array", "items": {"type": "string"}},
          "crimeCategories": {"type": "array", "items": {"type": "string"}},
          "laRegions": {"type": "array", "items": {"type": "string"}},
          "descent": {"type": "array", "items": {"type": "string"}},
          "genders": {"type": "array", "items": {"type": "string"}},
          "ageRanges": {"type": "array", "items": {"type": "string"}},
          "seasons": {"type": "array", "items": {"type": "string"}},
          "holidays": {"type": "array", "items": {"type": "string"}},
          "timeGranularities": {"type": "array", "items": {"type": "string"}},
          "chartColors": {"type": "array", "items": {"type": "string"}},
          "colorScale": {"type": "array", "items": {"$ref": "#/components/schemas/ColorStep"}}
        }
      },
      "CalendarResponse": {
        "type": "object",
        "properties": {"date": {"type": "string"}, "season": {"type": "string"}, "holiday": {"type": "string"}}
      },
      "ColorStep": {
        "type": "object",
        "properties": {"above": {"type": "integer"}, "color": {"type": "string"}}
      },
      "RegionsResponse": {
        "type": "object",
        "properties": {
          "regions": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "label": {"type": "string"},
                "areas": {"type": "array", "items": {"type": "string"}},
                "center": {"type": "array", "items": {"type": "number"}},
                "boundary": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}}
              }
            }
          },
          "colorScale": {"type": "array", "items": {"$ref": "#/components/schemas/ColorStep"}},
          "colorFloor": {"type": "string"}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "Crimestats API",
	Description:      "Filtered crime report queries for the dashboard",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
