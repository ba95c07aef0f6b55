package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

func TestDetectApproval(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"Yes, please", true},
		{"sure, sounds good", true},
		{"go ahead and apply", true},
		{"Update them all", true},
		{"APPLY CHANGES", true},
		{"how much did I spend on coffee?", false},
		{"no thanks", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := detectApproval(tc.message); got != tc.want {
			t.Errorf("detectApproval(%q) = %v, хотели %v", tc.message, got, tc.want)
		}
	}
}

func TestLimitAdjustments(t *testing.T) {
	// Повышение в полтора раза, понижение на треть, округление до доллара
	if got := increasedLimit(decimal.NewFromInt(50)); !got.Equal(decimal.NewFromInt(75)) {
		t.Errorf("increasedLimit(50) = %s, хотели 75", got)
	}
	if got := increasedLimit(decimal.NewFromInt(49)); !got.Equal(decimal.NewFromInt(74)) {
		t.Errorf("increasedLimit(49) = %s, хотели 74", got)
	}
	if got := reducedLimit(decimal.NewFromInt(100)); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("reducedLimit(100) = %s, хотели 70", got)
	}
	if got := reducedLimit(decimal.NewFromInt(45)); !got.Equal(decimal.NewFromInt(32)) {
		t.Errorf("reducedLimit(45) = %s, хотели 32", got)
	}
}

func TestChatWindowStart(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	if got := chatWindowStart(now, models.PeriodWeek); got.Day() != 8 {
		t.Errorf("недельное окно: получили %v, хотели 8 мая", got)
	}
	if got := chatWindowStart(now, models.PeriodMonth); got.Month() != time.April {
		t.Errorf("месячное окно: получили %v, хотели апрель", got)
	}
	if got := chatWindowStart(now, ""); got.Year() != 2023 {
		t.Errorf("запасное окно: получили %v, хотели год назад", got)
	}
}
