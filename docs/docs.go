// Package docs registers the swagger document served under /swagger.
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
        "/departments": {
            "get": {"tags": ["catalog"], "summary": "Get all departments", "produces": ["application/json"], "responses": {"200": {"description": "Departments retrieved successfully"}}}
        },
        "/departments/{departmentId}/parcours": {
            "get": {"tags": ["catalog"], "summary": "List department parcours", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "departmentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "Parcours retrieved successfully"}, "404": {"description": "Department not found"}}}
        },
        "/parcours/{parcoursId}/courses": {
            "get": {"tags": ["catalog"], "summary": "List parcours courses", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "parcoursId", "in": "path", "required": true},
                    {"enum": ["on_list", "mandatory"], "type": "string", "name": "kind", "in": "query"}
                ],
                "responses": {"200": {"description": "Courses retrieved successfully"}, "404": {"description": "Parcours not found"}}}
        },
        "/parcours/{parcoursId}/partition": {
            "get": {"tags": ["enrollment"], "summary": "Get parcours constraint structure", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "parcoursId", "in": "path", "required": true}],
                "responses": {"200": {"description": "Partition computed"}, "400": {"description": "Malformed course list"}, "404": {"description": "Parcours not found"}}}
        },
        "/students": {
            "get": {"tags": ["students"], "summary": "List students", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "departmentId", "in": "query"}, {"type": "string", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "Students retrieved"}, "400": {"description": "Invalid department ID"}, "404": {"description": "Department not found"}}},
            "post": {"tags": ["students"], "summary": "Register a student", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Student registered"}, "400": {"description": "Invalid request"}, "404": {"description": "Department not found"}}}
        },
        "/students/{id}/status": {
            "put": {"tags": ["students"], "summary": "Lock or unlock a selection", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Status updated"}, "404": {"description": "Student not found"}}}
        },
        "/students/{id}/department": {
            "put": {"tags": ["enrollment"], "summary": "Set a student's department", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Department set"}, "409": {"description": "Selection locked"}}}
        },
        "/students/{id}/parcours": {
            "put": {"tags": ["enrollment"], "summary": "Set a student's parcours", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Parcours set"}, "409": {"description": "Selection locked"}}}
        },
        "/students/{id}/enrollment": {
            "get": {"tags": ["enrollment"], "summary": "Get a student's selection", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Selection retrieved"}, "404": {"description": "Student not found"}}}
        },
        "/students/{id}/enrollment/choices": {
            "put": {"tags": ["enrollment"], "summary": "Check or uncheck a course", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Selection updated"}, "400": {"description": "Category does not fit the course"}, "409": {"description": "Selection locked or course clashes"}}}
        },
        "/students/{id}/enrollment/submit": {
            "post": {"tags": ["enrollment"], "summary": "Submit a selection", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Selection submitted"}, "409": {"description": "Selection already submitted"}, "422": {"description": "Selection cannot be evaluated"}}}
        },
        "/students/{id}/courses/available": {
            "get": {"tags": ["enrollment"], "summary": "List compatible courses", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Courses retrieved"}}}
        },
        "/students/{id}/courses/electives": {
            "get": {"tags": ["enrollment"], "summary": "List elective courses", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Courses retrieved"}}}
        },
        "/calendar": {
            "get": {"tags": ["calendar"], "summary": "Get the academic calendar", "produces": ["application/json"], "responses": {"200": {"description": "Calendar retrieved successfully"}}},
            "put": {"tags": ["calendar"], "summary": "Save the academic calendar", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}],
                "responses": {"200": {"description": "Calendar saved"}, "400": {"description": "Unknown key or malformed date"}, "422": {"description": "Calendar refused because of violations"}}}
        },
        "/calendar/validate": {
            "post": {"tags": ["calendar"], "summary": "Validate an academic calendar", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}],
                "responses": {"200": {"description": "Calendar checked"}, "400": {"description": "Unknown key or malformed date"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Course Selection API",
	Description:      "API for course selection, enrollment constraints and the academic calendar",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
