package api

import (
	"strconv"
	"time"

	"spendtrack/middleware"
	"spendtrack/service"
	"spendtrack/store"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler 消费分析处理器
type AnalysisHandler struct {
	store *store.Store
}

// NewAnalysisHandler 创建消费分析处理器
func NewAnalysisHandler(s *store.Store) *AnalysisHandler {
	return &AnalysisHandler{store: s}
}

// GetAnalysis 获取消费分析报告
// @Summary 获取消费分析报告
// @Description 对当前用户的全量消费和预算数据重新计算分析报告：
// @Description 总消费、各类别合计（金额降序，金额相同按类别名升序）、最高消费类别、
// @Description 各类别预算执行情况、当年按月汇总、历年按年汇总。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param year query int false "按月汇总的年份，默认当前年份"
// @Success 200 {object} Response{data=service.Report} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analysis [get]
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 2000 || y > 2100 {
			BadRequest(c, "year格式错误，应为4位数字（如：2024）")
			return
		}
		year = y
	}

	expenses, err := h.store.ListExpenses(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询消费记录失败"))
		return
	}
	budgets, err := h.store.ListBudgets(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}
	monthly, err := h.store.MonthlyTotals(userID, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "按月统计失败"))
		return
	}
	yearly, err := h.store.YearlyTotals(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "按年统计失败"))
		return
	}

	Success(c, service.Analyze(expenses, budgets, monthly, yearly))
}
