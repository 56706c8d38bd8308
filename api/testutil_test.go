package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"spendtrack/config"
	"spendtrack/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupMockStore 基于 sqlmock 构造存储层，与生产一致开启 TranslateError
func setupMockStore(t *testing.T) (sqlmock.Sqlmock, *store.Store, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return mock, store.New(gormDB), func() { sqlDB.Close() }
}

// authedAs 模拟 JWT 鉴权中间件注入的身份信息
func authedAs(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: ":8080", Mode: "debug"},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpireHours: 24,
			ExpireTime:  24 * time.Hour,
		},
	}
}

// parseResponse 解析通用响应包
func parseResponse(t *testing.T, body []byte) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}
