package api

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"spendtrack/middleware"
	"spendtrack/service"
	"spendtrack/store"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	store    *store.Store
	notifier *service.Notifier
	email    *service.EmailService // 可为 nil，表示不发预算提醒
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(s *store.Store, n *service.Notifier, e *service.EmailService) *ExpenseHandler {
	return &ExpenseHandler{store: s, notifier: n, email: e}
}

// CreateExpenseRequest 创建消费记录请求
// 金额允许为负（退款/冲正），为 0 视为缺参；时间戳由服务端在入库时赋值
type CreateExpenseRequest struct {
	Category    string  `json:"category" binding:"required" example:"餐饮"`
	Amount      float64 `json:"amount" binding:"required" example:"99.99"`
	Description string  `json:"description" example:"午餐"`
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条新的消费记录，记录时间由服务端赋值。创建成功后向该用户的实时通道推送。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "类别不能为空")
		return
	}

	expense, err := h.store.CreateExpense(userID, req.Category, req.Amount, req.Description)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建消费记录失败"))
		return
	}

	// 实时推送，fire-and-forget，推送失败不影响写入结果
	h.notifier.Publish(userID, *expense)

	// 预算超支提醒，同样不阻塞响应
	if h.email != nil {
		go h.checkBudgetAlert(userID, req.Category)
	}

	SuccessWithMessage(c, "创建成功", expense)
}

// checkBudgetAlert 检查该类别是否超出预算，超出则发提醒邮件
// 任何失败只记日志，绝不回滚已完成的写入
func (h *ExpenseHandler) checkBudgetAlert(userID uint, category string) {
	budget, err := h.store.GetBudget(userID, category)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("预算提醒: 查询预算失败: %v", err)
		}
		return
	}

	spent, err := h.store.CategoryTotal(userID, category)
	if err != nil {
		log.Printf("预算提醒: 统计类别总额失败: %v", err)
		return
	}
	if spent <= budget.Amount {
		return
	}

	user, err := h.store.GetUserByID(userID)
	if err != nil {
		log.Printf("预算提醒: 查询用户失败: %v", err)
		return
	}

	if err := h.email.SendBudgetAlertEmail(user.Email, user.Username, category, budget.Amount, spent); err != nil {
		log.Printf("预算提醒: 发送邮件失败: %v", err)
	}
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 获取当前用户的全部消费记录，按时间倒序（最新在前）
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	expenses, err := h.store.ListExpenses(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, expenses)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Description 删除指定的消费记录。只能删除本人的记录，删除他人记录按不存在处理。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := h.store.DeleteExpense(userID, uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "记录不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
