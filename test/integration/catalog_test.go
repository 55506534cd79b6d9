//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookLifecycle(t *testing.T) {
	userID, token := RegisterTestUser(t, "owner")
	category := fmt.Sprintf("Cat%d", unique())
	bookID := CreateTestBook(t, userID, token, category)

	t.Run("按分类查询", func(t *testing.T) {
		resp := Do(t, http.MethodGet, "/books?category="+category, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var items []struct {
			ID string `json:"_id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, bookID, items[0].ID)
	})

	t.Run("评论计数", func(t *testing.T) {
		resp := Do(t, http.MethodPost, "/books/"+bookID+"/reviews", map[string]interface{}{"rating": 4}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Message)

		resp = Do(t, http.MethodGet, "/books/"+bookID, nil, token)
		var detail struct {
			Reviews int `json:"reviews"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &detail))
		assert.Equal(t, 1, detail.Reviews)
	})

	t.Run("非所有者不能修改", func(t *testing.T) {
		_, other := RegisterTestUser(t, "other")
		resp := Do(t, http.MethodPut, "/books/"+bookID, map[string]string{"excerpt": "x"}, other)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("删除后不可见", func(t *testing.T) {
		resp := Do(t, http.MethodDelete, "/books/"+bookID, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = Do(t, http.MethodGet, "/books/"+bookID, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	_, token := RegisterTestUser(t, "logout")

	resp := Do(t, http.MethodPost, "/logout", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = Do(t, http.MethodGet, "/books", nil, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
