package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lecturer Claims API",
        "description": "Claim submission and processing service for lecturer claims",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and token lifecycle"},
        {"name": "Claims", "description": "Claim submission and processing workflow"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
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
                    "503": {"description": "Dependencies unavailable"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/claims": {
            "get": {
                "tags": ["Claims"],
                "security": [{"BearerAuth": []}],
                "summary": "List claims visible to the caller",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "centerId", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Claims"],
                "security": [{"BearerAuth": []}],
                "summary": "Submit a claim",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitClaimRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/claims/export": {
            "get": {
                "tags": ["Claims"],
                "security": [{"BearerAuth": []}],
                "summary": "Export claims as CSV or PDF",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "centerId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        },
        "/claims/{id}": {
            "get": {
                "tags": ["Claims"],
                "security": [{"BearerAuth": []}],
                "summary": "Get claim detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/claims/{id}/decision": {
            "post": {
                "tags": ["Claims"],
                "security": [{"BearerAuth": []}],
                "summary": "Approve or reject a pending claim",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideClaimRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Claim already processed"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "SubmitClaimRequest": {
            "type": "object",
            "properties": {
                "claimType": {"type": "string", "enum": ["TEACHING", "TRANSPORTATION", "THESIS_PROJECT"]},
                "courseCode": {"type": "string"},
                "courseTitle": {"type": "string"},
                "teachingDate": {"type": "string"},
                "teachingStartTime": {"type": "string"},
                "teachingEndTime": {"type": "string"},
                "teachingHours": {"type": "string"},
                "transportToTeachingDate": {"type": "string"},
                "transportToTeachingFrom": {"type": "string"},
                "transportToTeachingTo": {"type": "string"},
                "transportFromTeachingDate": {"type": "string"},
                "transportFromTeachingFrom": {"type": "string"},
                "transportFromTeachingTo": {"type": "string"},
                "transportType": {"type": "string", "enum": ["PUBLIC", "PRIVATE"]},
                "transportDestinationFrom": {"type": "string"},
                "transportDestinationTo": {"type": "string"},
                "transportRegNumber": {"type": "string"},
                "transportCubicCapacity": {"type": "string"},
                "transportAmount": {"type": "string"},
                "thesisType": {"type": "string", "enum": ["SUPERVISION", "EXAMINATION"]},
                "thesisSupervisionRank": {"type": "string"},
                "thesisExamCourseCode": {"type": "string"},
                "thesisExamDate": {"type": "string"},
                "supervisedStudents": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SupervisedStudentEntry"}
                }
            },
            "required": ["claimType"]
        },
        "SupervisedStudentEntry": {
            "type": "object",
            "properties": {
                "studentName": {"type": "string"},
                "thesisTitle": {"type": "string"}
            }
        },
        "DecideClaimRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["APPROVED", "REJECTED"]},
                "note": {"type": "string"}
            },
            "required": ["status"]
        },
        "Violation": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
