package service

import (
	"sort"

	"spendtrack/models"
	"spendtrack/store"
)

// CategoryTotal 单个类别的消费合计
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// BudgetStatus 某类别的预算执行情况
type BudgetStatus struct {
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"` // 超支时为负数
}

// Report 消费分析报告
// category_totals 用有序数组而非 map，保证金额降序在 JSON 序列化后仍然成立
type Report struct {
	TotalSpent         float64                 `json:"total_spent"`
	CategoryTotals     []CategoryTotal         `json:"category_totals"`
	TopExpenseCategory *CategoryTotal          `json:"top_expense_category"` // 无任何消费时为 null
	BudgetStatus       map[string]BudgetStatus `json:"budget_status"`
	MonthlyExpenses    []store.MonthTotal      `json:"monthly_expenses"`
	YearlyExpenses     []store.YearTotal       `json:"yearly_expenses"`
}

// Analyze 根据存储层查询结果生成分析报告，纯计算，无任何副作用
// 不做缓存：每次请求对该用户的全量数据重算。单用户数据量小，
// 这是有意的取舍，换来的是结果永远与当前数据一致。
//
// 排序规则：category_totals 按金额降序；金额相同的类别按类别名升序，
// 保证结果确定、与插入顺序无关。
func Analyze(expenses []models.Expense, budgets []models.Budget, monthly []store.MonthTotal, yearly []store.YearTotal) *Report {
	var totalSpent float64
	sums := make(map[string]float64)
	for _, e := range expenses {
		totalSpent += e.Amount
		sums[e.Category] += e.Amount
	}

	categoryTotals := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		categoryTotals = append(categoryTotals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(categoryTotals, func(i, j int) bool {
		if categoryTotals[i].Total != categoryTotals[j].Total {
			return categoryTotals[i].Total > categoryTotals[j].Total
		}
		return categoryTotals[i].Category < categoryTotals[j].Category
	})

	var top *CategoryTotal
	if len(categoryTotals) > 0 {
		top = &categoryTotals[0]
	}

	// 每个设置了预算的类别都有一条状态，没有消费的类别 spent 为 0；
	// 有消费但未设预算的类别不出现
	budgetStatus := make(map[string]BudgetStatus, len(budgets))
	for _, b := range budgets {
		spent := sums[b.Category]
		budgetStatus[b.Category] = BudgetStatus{
			Budget:    b.Amount,
			Spent:     spent,
			Remaining: b.Amount - spent,
		}
	}

	if monthly == nil {
		monthly = []store.MonthTotal{}
	}
	if yearly == nil {
		yearly = []store.YearTotal{}
	}

	return &Report{
		TotalSpent:         totalSpent,
		CategoryTotals:     categoryTotals,
		TopExpenseCategory: top,
		BudgetStatus:       budgetStatus,
		MonthlyExpenses:    monthly,
		YearlyExpenses:     yearly,
	}
}
