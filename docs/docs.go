// Package docs Swagger文档（swag init -g cmd/api/main.go 生成）
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
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "用户注册",
                "parameters": [
                    {"description": "注册信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "注册成功", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误或邮箱、手机号已存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "用户登录",
                "parameters": [
                    {"description": "登录信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "登录成功", "headers": {"x-api-key": {"type": "string", "description": "JWT Token"}}, "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "邮箱或密码错误", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/logout": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "用户登出",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Token无效", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/books": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书列表",
                "parameters": [
                    {"type": "string", "description": "发布者ID", "name": "userId", "in": "query"},
                    {"type": "string", "description": "分类", "name": "category", "in": "query"},
                    {"type": "string", "description": "子分类", "name": "subcategory", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "没有符合条件的图书", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "创建图书",
                "parameters": [
                    {"description": "图书信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误、书名或ISBN已存在", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "未登录或userId与登录用户不符", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/books/{bookId}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书详情",
                "parameters": [{"type": "string", "description": "图书ID", "name": "bookId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "更新图书",
                "parameters": [
                    {"type": "string", "description": "图书ID", "name": "bookId", "in": "path", "required": true},
                    {"description": "更新字段", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "不是图书所有者", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "删除图书",
                "parameters": [{"type": "string", "description": "图书ID", "name": "bookId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在或已删除", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/books/{bookId}/reviews": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["评论"],
                "summary": "创建评论",
                "parameters": [
                    {"type": "string", "description": "图书ID", "name": "bookId", "in": "path", "required": true},
                    {"description": "评论", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/reviews/{reviewId}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["评论"],
                "summary": "删除评论",
                "parameters": [{"type": "string", "description": "评论ID", "name": "reviewId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "评论不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AddressRequest": {
            "type": "object",
            "properties": {
                "street": {"type": "string"},
                "city": {"type": "string"},
                "pincode": {"type": "string"}
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Mr"},
                "name": {"type": "string"},
                "phone": {"type": "string", "example": "9876543210"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "address": {"$ref": "#/definitions/dto.AddressRequest"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.CreateBookRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "userId": {"type": "string"},
                "ISBN": {"type": "string", "example": "978-0-13-468599-1"},
                "category": {"type": "string"},
                "subcategory": {"type": "string", "example": "Fiction,Drama"},
                "releasedAt": {"type": "string", "example": "2020-01-01"},
                "isDeleted": {"type": "boolean"}
            }
        },
        "dto.UpdateBookRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "releasedAt": {"type": "string"},
                "ISBN": {"type": "string"}
            }
        },
        "dto.CreateReviewRequest": {
            "type": "object",
            "properties": {
                "reviewedBy": {"type": "string"},
                "rating": {"type": "integer", "example": 5},
                "review": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "boolean"},
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "x-api-key",
            "in": "header"
        }
    }
}`

// SwaggerInfo 文档元信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Book Catalog API",
	Description:      "图书目录服务：用户注册登录、图书增删改查与评论",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
