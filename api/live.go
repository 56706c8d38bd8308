package api

import (
	"encoding/json"
	"time"

	"spendtrack/middleware"
	"spendtrack/models"
	"spendtrack/service"

	"github.com/gin-gonic/gin"
)

// sseExpenseFrame 实时推送帧
type sseExpenseFrame struct {
	Type string          `json:"type"` // connected | expense
	Data *models.Expense `json:"data,omitempty"`
}

func writeSSEJSON(c *gin.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = c.Writer.WriteString("data: " + string(b) + "\n\n")
	c.Writer.Flush()
}

// LiveHandler 实时推送处理器
type LiveHandler struct {
	notifier *service.Notifier
}

// NewLiveHandler 创建实时推送处理器
func NewLiveHandler(n *service.Notifier) *LiveHandler {
	return &LiveHandler{notifier: n}
}

// heartbeatInterval SSE 心跳间隔，避免中间代理断开空闲连接
const heartbeatInterval = 30 * time.Second

// StreamExpenses 订阅新消费记录（SSE）
// @Summary 订阅新消费记录
// @Description SSE 流式接口：当前用户每创建一条消费记录，向所有在线客户端推送一帧 JSON。
// @Description 浏览器 EventSource 无法设置请求头，可改用 ?token= 传递 JWT。
// @Tags 实时推送
// @Produce text/event-stream
// @Security BearerAuth
// @Param token query string false "JWT（请求头不可用时）"
// @Success 200 {string} string "SSE流：data: {\"type\":\"expense\",\"data\":{...}}"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/live/expenses [get]
func (h *LiveHandler) StreamExpenses(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// SSE响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ch, cancel := h.notifier.Subscribe(userID)
	defer cancel()

	writeSSEJSON(c, sseExpenseFrame{Type: "connected"})

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			// 客户端断开
			return
		case expense, ok := <-ch:
			if !ok {
				return
			}
			writeSSEJSON(c, sseExpenseFrame{Type: "expense", Data: &expense})
		case <-heartbeat.C:
			// 注释行心跳，客户端侧不可见
			_, _ = c.Writer.WriteString(": ping\n\n")
			c.Writer.Flush()
		}
	}
}
