// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Tofus",
            "email": "terry.f.wang@gmail.com"
        },
        "license": {
            "name": "CC-BY 4.0",
            "url": "https://creativecommons.org/licenses/by/4.0/"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/journeys": {
            "get": {
                "description": "依建立時間由新到舊列出旅程地圖。q 不分大小寫比對使用者類型、情境與目標。",
                "produces": ["application/json"],
                "tags": ["Journeys"],
                "summary": "列出旅程地圖",
                "parameters": [
                    {"type": "string", "description": "搜尋關鍵字", "name": "q", "in": "query"},
                    {"type": "integer", "description": "最多筆數", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.JourneyListResponse"}},
                    "500": {"description": "載入資料失敗", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "驗證並保存一份六個階段的使用者旅程地圖。journey_id 省略時由伺服器產生。",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Journeys"],
                "summary": "新增旅程地圖",
                "parameters": [
                    {"description": "旅程地圖內容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.JourneyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.JourneyRecord"}},
                    "400": {"description": "欄位驗證失敗", "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}},
                    "409": {"description": "journey_id 重複", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "提交過於頻繁", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "保存失敗", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/journeys/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Journeys"],
                "summary": "取得單一旅程地圖",
                "parameters": [
                    {"type": "string", "description": "journey_id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.JourneyRecord"}},
                    "404": {"description": "找不到旅程地圖", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "載入資料失敗", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/journeys/{id}/csv": {
            "get": {
                "description": "五行基本資訊、一行空白、欄位標題與六個階段。欄位依 RFC 4180 加上引號。",
                "produces": ["text/csv"],
                "tags": ["Journeys"],
                "summary": "下載旅程地圖 CSV",
                "parameters": [
                    {"type": "string", "description": "journey_id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "journey-<id>.csv", "schema": {"type": "file"}},
                    "404": {"description": "找不到旅程地圖", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/journeys/{id}/chart": {
            "get": {
                "description": "六個階段的情緒指數、分級 (low/mid/high) 與圖示。",
                "produces": ["application/json"],
                "tags": ["Charts"],
                "summary": "情緒起伏圖資料",
                "parameters": [
                    {"type": "string", "description": "journey_id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/chart.Chart"}},
                    "404": {"description": "找不到旅程地圖", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/journeys/{id}/chart.svg": {
            "get": {
                "produces": ["image/svg+xml"],
                "tags": ["Charts"],
                "summary": "情緒起伏圖 (SVG)",
                "parameters": [
                    {"type": "string", "description": "journey_id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "SVG 圖片", "schema": {"type": "file"}},
                    "404": {"description": "找不到旅程地圖", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "description": "旅程地圖總數、不重複的貢獻者人數與最近三筆貢獻。",
                "produces": ["application/json"],
                "tags": ["About"],
                "summary": "專案統計",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Stats"}},
                    "500": {"description": "無法取得統計資料", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/prompt-template": {
            "get": {
                "description": "協助整理旅程內容的大型語言模型提示詞。",
                "produces": ["text/plain"],
                "tags": ["About"],
                "summary": "Prompt 模板",
                "responses": {
                    "200": {"description": "Prompt 模板全文", "schema": {"type": "string"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Ops"],
                "summary": "存活檢查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatusResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "確認資料庫可以連線。",
                "produces": ["application/json"],
                "tags": ["Ops"],
                "summary": "就緒檢查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatusResponse"}},
                    "503": {"description": "資料庫尚未就緒", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "chart.Chart": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "情緒起伏圖"},
                "y_min": {"type": "integer", "example": 1},
                "y_max": {"type": "integer", "example": 10},
                "y_step": {"type": "integer", "example": 1},
                "show_legend": {"type": "boolean", "example": false},
                "points": {"type": "array", "items": {"$ref": "#/definitions/chart.Point"}}
            }
        },
        "chart.Point": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "觸發事件"},
                "step_name": {"type": "string"},
                "emotion": {"type": "string"},
                "score": {"type": "integer", "example": 5},
                "plotted": {"type": "integer", "example": 5},
                "tier": {"type": "string", "enum": ["low", "mid", "high"]},
                "icon": {"type": "string"},
                "x": {"type": "number", "example": 0.2}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "保存失敗，請稍後再試"}
            }
        },
        "handler.JourneyListResponse": {
            "type": "object",
            "properties": {
                "journeys": {"type": "array", "items": {"$ref": "#/definitions/models.JourneyRecord"}},
                "count": {"type": "integer", "example": 3},
                "empty_message": {"type": "string", "example": "目前還沒有旅程記錄"}
            }
        },
        "handler.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "handler.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "表單內容有誤，請檢查標示的欄位"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/models.FieldError"}}
            }
        },
        "models.Contribution": {
            "type": "object",
            "properties": {
                "author_name": {"type": "string"},
                "journey_title": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "stages[2].emotion_score"},
                "message": {"type": "string", "example": "must be at most 10"}
            }
        },
        "models.JourneyRecord": {
            "type": "object",
            "properties": {
                "journey_id": {"type": "string"},
                "author_name": {"type": "string"},
                "journey_title": {"type": "string"},
                "context": {"type": "string"},
                "goal": {"type": "string"},
                "created_at": {"type": "string"},
                "stages": {"type": "array", "items": {"$ref": "#/definitions/models.Stage"}}
            }
        },
        "models.JourneyRequest": {
            "type": "object",
            "required": ["context", "goal", "journey_title"],
            "properties": {
                "journey_id": {"type": "string"},
                "author_name": {"type": "string", "maxLength": 100, "example": "Tofus"},
                "journey_title": {"type": "string", "maxLength": 200, "example": "新手用戶"},
                "context": {"type": "string", "maxLength": 2000, "example": "首次使用產品"},
                "goal": {"type": "string", "maxLength": 2000, "example": "完成註冊"},
                "stages": {"type": "array", "minItems": 6, "maxItems": 6, "items": {"$ref": "#/definitions/models.Stage"}}
            }
        },
        "models.Stage": {
            "type": "object",
            "properties": {
                "step_name": {"type": "string", "maxLength": 2000, "example": "下載 App"},
                "description": {"type": "string", "maxLength": 2000},
                "system_response": {"type": "string", "maxLength": 2000},
                "pain_point": {"type": "string", "maxLength": 2000},
                "emotion_score": {"type": "integer", "minimum": 1, "maximum": 10, "example": 5},
                "emotion": {"type": "string", "maxLength": 2000, "example": "好奇"}
            }
        },
        "models.Stats": {
            "type": "object",
            "properties": {
                "total_journeys": {"type": "integer"},
                "total_contributors": {"type": "integer"},
                "recent_contributions": {"type": "array", "items": {"$ref": "#/definitions/models.Contribution"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "使用者旅程地圖 API",
	Description:      "Submit, search, chart and export six-stage user journey maps.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
