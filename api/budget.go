package api

import (
	"strings"

	"spendtrack/middleware"
	"spendtrack/store"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct {
	store *store.Store
}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler(s *store.Store) *BudgetHandler {
	return &BudgetHandler{store: s}
}

// SetBudgetRequest 设置预算请求
type SetBudgetRequest struct {
	Category string  `json:"category" binding:"required" example:"餐饮"`
	Amount   float64 `json:"amount" binding:"required" example:"1500.00"`
}

// Set 设置预算
// @Summary 设置预算
// @Description 设置某类别的预算，upsert 语义：同一类别重复设置只保留最新金额
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "设置成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [put]
func (h *BudgetHandler) Set(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "类别不能为空")
		return
	}

	budget, err := h.store.SetBudget(userID, req.Category, req.Amount)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "设置预算失败"))
		return
	}

	SuccessWithMessage(c, "预算设置成功", budget)
}

// List 获取预算列表
// @Summary 获取预算列表
// @Description 获取当前用户的全部预算，按类别名升序
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	budgets, err := h.store.ListBudgets(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, budgets)
}
