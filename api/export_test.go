package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spendtrack/models"
)

func setupExportRouter(t *testing.T) (sqlmock.Sqlmock, *gin.Engine, func()) {
	mock, s, cleanup := setupMockStore(t)

	h := NewExportHandler(s)
	r := gin.New()
	r.GET("/export/csv", authedAs(1, "alice"), h.ExportCSV)
	r.GET("/export/excel", authedAs(1, "alice"), h.ExportExcel)
	r.GET("/export/json", authedAs(1, "alice"), h.ExportJSON)
	return mock, r, cleanup
}

func expenseExportRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "description", "date", "created_at", "updated_at", "deleted_at"}).
		AddRow(2, 1, "购物", 88, `说明里有,逗号和"引号"`, now, now, now, nil).
		AddRow(1, 1, "餐饮", 12.5, "午餐", now.Add(-time.Hour), now, now, nil)
}

func TestExportCSV(t *testing.T) {
	mock, r, cleanup := setupExportRouter(t)
	defer cleanup()

	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(expenseExportRows(now))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/export/csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expenses.csv")

	body := w.Body.String()
	// BOM 供 Excel 识别编码
	require.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))

	// 去掉 BOM 后可按 CSV 标准无损解析回原数据
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(body, "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Date", "Category", "Amount", "Description"}, records[0])
	// 顺序与列表接口一致，最新在前
	assert.Equal(t, []string{"2024-03-15 12:30:00", "购物", "88.00", `说明里有,逗号和"引号"`}, records[1])
	assert.Equal(t, []string{"2024-03-15 11:30:00", "餐饮", "12.50", "午餐"}, records[2])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportCSV_Empty(t *testing.T) {
	mock, r, cleanup := setupExportRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/export/csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// 无记录时只有表头
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(w.Body.String(), "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Date", "Category", "Amount", "Description"}, records[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportExcel(t *testing.T) {
	mock, r, cleanup := setupExportRouter(t)
	defer cleanup()

	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(expenseExportRows(now))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/export/excel", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("消费记录")
	require.NoError(t, err)
	// 表头 + 2 条数据 + 合计行
	require.Len(t, rows, 4)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "购物", rows[1][1])
	assert.Equal(t, "合计", rows[3][0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJSON(t *testing.T) {
	mock, r, cleanup := setupExportRouter(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(expenseExportRows(now))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/export/json", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			TotalCount  int              `json:"total_count"`
			TotalAmount float64          `json:"total_amount"`
			Expenses    []models.Expense `json:"expenses"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.TotalCount)
	assert.Equal(t, 100.5, resp.Data.TotalAmount)
	require.Len(t, resp.Data.Expenses, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
