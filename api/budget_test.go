package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBudgetRouter(t *testing.T) (sqlmock.Sqlmock, *gin.Engine, func()) {
	mock, s, cleanup := setupMockStore(t)

	h := NewBudgetHandler(s)
	r := gin.New()
	r.PUT("/budgets", authedAs(1, "alice"), h.Set)
	r.GET("/budgets", authedAs(1, "alice"), h.List)
	return mock, r, cleanup
}

func TestSetBudget(t *testing.T) {
	mock, r, cleanup := setupBudgetRouter(t)
	defer cleanup()

	// upsert：(user_id, category) 冲突时更新金额
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `budgets` .*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := `{"category":"餐饮","amount":1500}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/budgets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w.Body.Bytes())
	assert.Equal(t, "预算设置成功", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetBudget_InvalidPayload(t *testing.T) {
	_, r, cleanup := setupBudgetRouter(t)
	defer cleanup()

	cases := []struct {
		name string
		body string
	}{
		{"缺少金额", `{"category":"餐饮"}`},
		{"类别为空白", `{"category":"  ","amount":100}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("PUT", "/budgets", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListBudgets(t *testing.T) {
	mock, r, cleanup := setupBudgetRouter(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `budgets` .*ORDER BY category ASC").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "created_at", "updated_at"}).
			AddRow(1, 1, "房租", 3000, now, now).
			AddRow(2, 1, "餐饮", 1500, now, now))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/budgets", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "房租")
	assert.Contains(t, w.Body.String(), "餐饮")
	require.NoError(t, mock.ExpectationsWereMet())
}
