package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/models"
	"spendtrack/store"
)

func TestAnalyze(t *testing.T) {
	expenses := []models.Expense{
		{Category: "餐饮", Amount: 12.5},
		{Category: "房租", Amount: 900},
		{Category: "餐饮", Amount: 7.5},
	}
	budgets := []models.Budget{
		{Category: "餐饮", Amount: 15},
		{Category: "旅行", Amount: 500},
	}
	monthly := []store.MonthTotal{{Month: 1, Total: 920}}
	yearly := []store.YearTotal{{Year: 2024, Total: 920}}

	report := Analyze(expenses, budgets, monthly, yearly)

	assert.Equal(t, 920.0, report.TotalSpent)

	// 金额降序
	require.Len(t, report.CategoryTotals, 2)
	assert.Equal(t, CategoryTotal{Category: "房租", Total: 900}, report.CategoryTotals[0])
	assert.Equal(t, CategoryTotal{Category: "餐饮", Total: 20}, report.CategoryTotals[1])

	require.NotNil(t, report.TopExpenseCategory)
	assert.Equal(t, "房租", report.TopExpenseCategory.Category)
	assert.Equal(t, 900.0, report.TopExpenseCategory.Total)

	// 超支类别 remaining 为负；设了预算但没消费的类别 spent 为 0
	require.Len(t, report.BudgetStatus, 2)
	assert.Equal(t, BudgetStatus{Budget: 15, Spent: 20, Remaining: -5}, report.BudgetStatus["餐饮"])
	assert.Equal(t, BudgetStatus{Budget: 500, Spent: 0, Remaining: 500}, report.BudgetStatus["旅行"])

	assert.Equal(t, monthly, report.MonthlyExpenses)
	assert.Equal(t, yearly, report.YearlyExpenses)
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze(nil, nil, nil, nil)

	assert.Equal(t, 0.0, report.TotalSpent)
	assert.Empty(t, report.CategoryTotals)
	// 没有任何消费时没有最高消费类别
	assert.Nil(t, report.TopExpenseCategory)
	assert.Empty(t, report.BudgetStatus)
	// JSON 里要序列化成 [] 而不是 null
	assert.NotNil(t, report.MonthlyExpenses)
	assert.NotNil(t, report.YearlyExpenses)
}

func TestAnalyze_NegativeAmounts(t *testing.T) {
	// 退款记为负数，直接参与合计
	expenses := []models.Expense{
		{Category: "购物", Amount: 100},
		{Category: "购物", Amount: -30},
	}

	report := Analyze(expenses, nil, nil, nil)

	assert.Equal(t, 70.0, report.TotalSpent)
	require.Len(t, report.CategoryTotals, 1)
	assert.Equal(t, 70.0, report.CategoryTotals[0].Total)
}

func TestAnalyze_TieBreakByCategoryName(t *testing.T) {
	// 金额相同时按类别名升序，结果与输入顺序无关
	expenses := []models.Expense{
		{Category: "乙", Amount: 50},
		{Category: "甲", Amount: 50},
	}

	report := Analyze(expenses, nil, nil, nil)

	require.Len(t, report.CategoryTotals, 2)
	assert.Equal(t, "乙", report.CategoryTotals[0].Category)
	assert.Equal(t, "甲", report.CategoryTotals[1].Category)
}
