package timesheet

import "github.com/shopspring/decimal"

// PayItem is a named bonus or deduction line on a salaried payroll record.
type PayItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SumPayItems totals the amounts of a bonus or deduction list.
func SumPayItems(items []PayItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// HourlyEarnings computes regular×rate + overtime×rate×multiplier.
// Callers that resolved no rate pass decimal.Zero and get zero earnings
// while still reporting the hours themselves.
func HourlyEarnings(regularHours, overtimeHours, rate, multiplier decimal.Decimal) decimal.Decimal {
	regularPay := regularHours.Mul(rate)
	overtimePay := overtimeHours.Mul(rate).Mul(multiplier)
	return regularPay.Add(overtimePay)
}

// NetSalary computes base + Σbonuses − Σdeductions for a salaried record.
// Amounts are expected non-negative at input but are not validated here: a
// negative entry simply shifts the sum arithmetically.
func NetSalary(baseSalary decimal.Decimal, bonuses, deductions []PayItem) decimal.Decimal {
	return baseSalary.Add(SumPayItems(bonuses)).Sub(SumPayItems(deductions))
}
