package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Purple Bank Transfer API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Purple Bank Transfer API",
    "version": "1.0.0"
  },
  "paths": {
    "/wizard": {
      "post": {
        "summary": "Create a wizard session",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Session created"}
        }
      }
    },
    "/wizard/{id}": {
      "get": {
        "summary": "Get wizard state",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Current state"},
          "404": {"description": "Session not found"}
        }
      },
      "delete": {
        "summary": "Close a wizard session",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Session closed"}
        }
      }
    },
    "/wizard/{id}/variant": {
      "post": {
        "summary": "Select the transfer variant",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["transferType"],
                "properties": {
                  "transferType": {"type": "string", "enum": ["domestic", "international"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Variant selected"},
          "400": {"description": "Validation error"},
          "409": {"description": "Invalid wizard transition"}
        }
      }
    },
    "/wizard/{id}/draft": {
      "put": {
        "summary": "Save the working draft without validating it",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Draft saved"},
          "409": {"description": "Invalid wizard transition"}
        }
      }
    },
    "/wizard/{id}/submit": {
      "post": {
        "summary": "Submit the draft for review",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["transferType", "recipientName", "bankName", "amount"],
                "properties": {
                  "transferType": {"type": "string", "enum": ["domestic", "international"]},
                  "recipientName": {"type": "string"},
                  "bankName": {"type": "string"},
                  "amount": {"type": "string"},
                  "description": {"type": "string"},
                  "accountNumber": {"type": "string"},
                  "routingNumber": {"type": "string"},
                  "iban": {"type": "string"},
                  "swiftCode": {"type": "string"},
                  "bankAddress": {"type": "string"},
                  "bankCountry": {"type": "string"},
                  "currency": {"type": "string"},
                  "useStripe": {"type": "boolean"},
                  "stripeAccountId": {"type": "string"},
                  "stripePublishableKey": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Draft committed, summary returned"},
          "400": {"description": "Validation error with per-field messages"},
          "409": {"description": "Invalid wizard transition"}
        }
      }
    },
    "/wizard/{id}/confirm": {
      "post": {
        "summary": "Confirm the reviewed transfer",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Transfer submitted"},
          "409": {"description": "Invalid transition or submission already in progress"},
          "422": {"description": "Submission rejected or timed out"}
        }
      }
    },
    "/wizard/{id}/edit": {
      "post": {
        "summary": "Return from summary to the form",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Back on the form step"},
          "409": {"description": "Invalid wizard transition"}
        }
      }
    },
    "/wizard/{id}/new": {
      "post": {
        "summary": "Start a new transfer after success",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Fresh form"},
          "409": {"description": "Invalid wizard transition"}
        }
      }
    },
    "/transfers": {
      "get": {
        "summary": "List prior transfers",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Transfer history"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
