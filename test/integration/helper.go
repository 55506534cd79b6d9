//go:build integration

// Package integration 针对运行中服务的冒烟测试
//
//	go run ./cmd/api
//	go test -tags integration ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// BaseURL 服务地址，可通过BOOKCATALOG_BASE_URL覆盖
var BaseURL = func() string {
	if u := os.Getenv("BOOKCATALOG_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}()

// Response 统一响应结构
type Response struct {
	StatusCode int             `json:"-"`
	Header     http.Header     `json:"-"`
	Status     bool            `json:"status"`
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// Do 发送请求并解析JSON响应，token非空时放入x-api-key头
func Do(t *testing.T, method, path string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, BaseURL+path, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-api-key", token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	result := Response{StatusCode: resp.StatusCode, Header: resp.Header}
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	return &result
}

// unique 基于时间戳的后缀，避免重复运行时冲突
func unique() int64 {
	return time.Now().UnixNano() % 1000000000
}

// GenerateTestISBN ISBN-13：978 + 10位数字
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", time.Now().UnixNano()%10000000000)
}

// RegisterTestUser 注册并登录，返回用户ID与Token
func RegisterTestUser(t *testing.T, prefix string) (userID, token string) {
	t.Helper()
	n := unique()
	email := fmt.Sprintf("%s_%d@test.com", prefix, n)

	resp := Do(t, http.MethodPost, "/register", map[string]interface{}{
		"title":    "Mr",
		"name":     prefix,
		"phone":    fmt.Sprintf("9%09d", n),
		"email":    email,
		"password": "Test1234",
		"address":  map[string]string{"street": "1 Main St", "city": "Pune", "pincode": "411001"},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "注册失败: %s", resp.Message)

	var user struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &user))

	resp = Do(t, http.MethodPost, "/login", map[string]string{"email": email, "password": "Test1234"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "登录失败: %s", resp.Message)
	token = resp.Header.Get("x-api-key")
	require.NotEmpty(t, token)

	return user.ID, token
}

// CreateTestBook 创建图书并返回图书ID
func CreateTestBook(t *testing.T, userID, token, category string) string {
	t.Helper()
	resp := Do(t, http.MethodPost, "/books", map[string]interface{}{
		"title":       fmt.Sprintf("集成测试图书_%d", unique()),
		"excerpt":     "集成测试用图书",
		"userId":      userID,
		"ISBN":        GenerateTestISBN(),
		"category":    category,
		"subcategory": "Testing,Go",
		"releasedAt":  "2020-01-01",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "创建图书失败: %s", resp.Message)

	var b struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &b))
	return b.ID
}
