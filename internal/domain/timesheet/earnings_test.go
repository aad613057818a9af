package timesheet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHourlyEarnings(t *testing.T) {
	// 38 regular + 6 overtime at $20/h with 1.5x: 760 + 180 = 940.
	earnings := HourlyEarnings(d(38), d(6), d(20), d(1.5))
	assert.True(t, earnings.Equal(d(940)), "earnings = %s", earnings)
}

func TestHourlyEarnings_NoRate(t *testing.T) {
	earnings := HourlyEarnings(d(38), d(6), decimal.Zero, d(1.5))
	assert.True(t, earnings.IsZero())
}

func TestNetSalary(t *testing.T) {
	net := NetSalary(d(5000),
		[]PayItem{{Name: "Performance", Amount: d(200)}, {Name: "Referral", Amount: d(50)}},
		[]PayItem{{Name: "Insurance", Amount: d(100)}},
	)
	assert.True(t, net.Equal(d(5150)), "net = %s", net)
}

func TestNetSalary_NoItems(t *testing.T) {
	net := NetSalary(d(5000), nil, nil)
	assert.True(t, net.Equal(d(5000)))
}

func TestNetSalary_NegativeAmountReducesArithmetically(t *testing.T) {
	// Negative entries are not treated specially, they just shift the sum.
	net := NetSalary(d(5000), []PayItem{{Name: "Adjustment", Amount: d(-100)}}, nil)
	assert.True(t, net.Equal(d(4900)))
}
