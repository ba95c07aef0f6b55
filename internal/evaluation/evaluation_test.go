package evaluation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/evaluation"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

// Среда 15 мая 2024: неделя с понедельника 13-го по воскресенье 19-е.
var wednesday = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func limitGoal(category, period string, maxSpend float64) *models.Goal {
	return &models.Goal{
		ID:     1,
		UserID: 1,
		Title:  "Coffee budget",
		Type:   models.GoalTypeLimit,
		Limit: &models.LimitGoal{
			Category: category,
			Period:   period,
			MaxSpend: decimal.NewFromFloat(maxSpend),
		},
	}
}

func savingsGoal(target float64) *models.Goal {
	return &models.Goal{
		ID:      2,
		UserID:  1,
		Title:   "Vacation fund",
		Type:    models.GoalTypeSavings,
		Savings: &models.SavingsGoal{TargetAmount: decimal.NewFromFloat(target)},
	}
}

func debit(amount float64, category string, date time.Time) models.Transaction {
	return models.Transaction{
		Amount:   decimal.NewFromFloat(amount),
		Type:     models.TransactionDebit,
		Category: category,
		Date:     date,
	}
}

func credit(amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		Amount: decimal.NewFromFloat(amount),
		Type:   models.TransactionCredit,
		Date:   date,
	}
}

func TestPeriodWindowWeek(t *testing.T) {
	start, end, ok := evaluation.PeriodWindow(wednesday, models.PeriodWeek)
	if !ok {
		t.Fatal("окно недели не посчиталось")
	}
	wantStart := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("начало недели: получили %v, хотели %v", start, wantStart)
	}
	if end.Day() != 19 || end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("конец недели: получили %v, хотели воскресенье 19-е 23:59:59", end)
	}
}

func TestPeriodWindowWeekOnSunday(t *testing.T) {
	// Воскресенье относится к неделе, начавшейся шесть дней назад
	sunday := time.Date(2024, 5, 19, 10, 0, 0, 0, time.UTC)
	start, _, ok := evaluation.PeriodWindow(sunday, models.PeriodWeek)
	if !ok {
		t.Fatal("окно недели не посчиталось")
	}
	if start.Day() != 13 {
		t.Errorf("начало недели для воскресенья: получили день %d, хотели 13", start.Day())
	}
}

func TestPeriodWindowMonth(t *testing.T) {
	// Февраль високосного года
	february := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	start, end, ok := evaluation.PeriodWindow(february, models.PeriodMonth)
	if !ok {
		t.Fatal("окно месяца не посчиталось")
	}
	if start.Day() != 1 || start.Month() != time.February {
		t.Errorf("начало месяца: получили %v", start)
	}
	if end.Day() != 29 || end.Month() != time.February {
		t.Errorf("конец месяца: получили %v, хотели 29 февраля", end)
	}
}

func TestPeriodWindowUnknown(t *testing.T) {
	if _, _, ok := evaluation.PeriodWindow(wednesday, "YEAR"); ok {
		t.Error("неизвестный период должен давать ok=false")
	}
}

func TestLimitProgressNoTransactions(t *testing.T) {
	goal := limitGoal("Coffee", models.PeriodWeek, 50)

	progress := evaluation.CalculateProgressAt(goal, nil, wednesday)
	limit, ok := progress.(*evaluation.LimitProgress)
	if !ok {
		t.Fatalf("ожидали LimitProgress, получили %T", progress)
	}

	if !limit.Spend.IsZero() {
		t.Errorf("spend: получили %s, хотели 0", limit.Spend)
	}
	if !limit.Percent.IsZero() {
		t.Errorf("percent: получили %s, хотели 0", limit.Percent)
	}
	if !limit.Remaining.Equal(decimal.NewFromInt(50)) {
		t.Errorf("remaining: получили %s, хотели 50", limit.Remaining)
	}
}

func TestLimitProgressCoffeeScenario(t *testing.T) {
	goal := limitGoal("Coffee", models.PeriodWeek, 50)
	transactions := []models.Transaction{
		debit(20, "Coffee", wednesday),
		debit(17.50, "Coffee", wednesday.AddDate(0, 0, -1)),
		// Не считаются: поступление, чужая категория, прошлая неделя
		credit(10, wednesday),
		debit(30, "Groceries", wednesday),
		debit(40, "Coffee", wednesday.AddDate(0, 0, -10)),
	}

	progress := evaluation.CalculateProgressAt(goal, transactions, wednesday)
	limit, ok := progress.(*evaluation.LimitProgress)
	if !ok {
		t.Fatalf("ожидали LimitProgress, получили %T", progress)
	}

	if limit.Spend.StringFixed(2) != "37.50" {
		t.Errorf("spend: получили %s, хотели 37.50", limit.Spend)
	}
	if limit.Remaining.StringFixed(2) != "12.50" {
		t.Errorf("remaining: получили %s, хотели 12.50", limit.Remaining)
	}
	if limit.Percent.StringFixed(1) != "75.0" {
		t.Errorf("percent: получили %s, хотели 75.0", limit.Percent)
	}
	if limit.PeriodStart != "2024-05-13" || limit.PeriodEnd != "2024-05-19" {
		t.Errorf("границы периода: %s..%s", limit.PeriodStart, limit.PeriodEnd)
	}
}

func TestLimitProgressExactLimit(t *testing.T) {
	goal := limitGoal("Coffee", models.PeriodWeek, 50)
	transactions := []models.Transaction{debit(50, "Coffee", wednesday)}

	progress := evaluation.CalculateProgressAt(goal, transactions, wednesday)
	limit := progress.(*evaluation.LimitProgress)

	if !limit.Percent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("percent: получили %s, хотели 100", limit.Percent)
	}
	if !limit.Remaining.IsZero() {
		t.Errorf("remaining: получили %s, хотели 0", limit.Remaining)
	}
}

func TestLimitProgressPercentCapped(t *testing.T) {
	goal := limitGoal("Coffee", models.PeriodWeek, 50)
	transactions := []models.Transaction{debit(120, "Coffee", wednesday)}

	progress := evaluation.CalculateProgressAt(goal, transactions, wednesday)
	limit := progress.(*evaluation.LimitProgress)

	if !limit.Percent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("percent должен упираться в 100, получили %s", limit.Percent)
	}
	if !limit.Remaining.IsZero() {
		t.Errorf("remaining не бывает отрицательным, получили %s", limit.Remaining)
	}
}

func TestSavingsProgressScenario(t *testing.T) {
	goal := savingsGoal(1000)
	transactions := []models.Transaction{
		credit(150, wednesday),
		credit(100, wednesday.AddDate(0, -2, 0)),
		debit(500, "Shopping", wednesday),
	}

	progress := evaluation.CalculateProgressAt(goal, transactions, wednesday)
	savings, ok := progress.(*evaluation.SavingsProgress)
	if !ok {
		t.Fatalf("ожидали SavingsProgress, получили %T", progress)
	}

	if savings.Current.StringFixed(2) != "250.00" {
		t.Errorf("current: получили %s, хотели 250.00", savings.Current)
	}
	if savings.Target.StringFixed(2) != "1000.00" {
		t.Errorf("target: получили %s, хотели 1000.00", savings.Target)
	}
	if savings.Percent.StringFixed(1) != "25.0" {
		t.Errorf("percent: получили %s, хотели 25.0", savings.Percent)
	}
}

func TestCalculateProgressUnavailable(t *testing.T) {
	// Цель без полей варианта — прогресс невычислим, это не ошибка
	bare := &models.Goal{Type: models.GoalTypeLimit}
	if progress := evaluation.CalculateProgressAt(bare, nil, wednesday); progress != nil {
		t.Errorf("LIMIT без параметров: получили %v, хотели nil", progress)
	}

	bareSavings := &models.Goal{Type: models.GoalTypeSavings}
	if progress := evaluation.CalculateProgressAt(bareSavings, nil, wednesday); progress != nil {
		t.Errorf("SAVINGS без параметров: получили %v, хотели nil", progress)
	}

	unknownPeriod := limitGoal("Coffee", "QUARTER", 50)
	if progress := evaluation.CalculateProgressAt(unknownPeriod, nil, wednesday); progress != nil {
		t.Errorf("неизвестный период: получили %v, хотели nil", progress)
	}
}

func TestMilestoneHit(t *testing.T) {
	target := decimal.NewFromInt(1000)

	cases := []struct {
		name    string
		current float64
		want    float64
		ok      bool
	}{
		{"ровно четверть", 250, 0.25, true},
		{"внутри узкого окна", 255, 0.25, true},
		{"до рубежа", 200, 0, false},
		{"половина", 500, 0.5, true},
		{"цель целиком", 1000, 1.0, true},
		{"перелёт мимо окна", 1020, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			milestone, ok := evaluation.MilestoneHit(decimal.NewFromFloat(tc.current), target)
			if ok != tc.ok || milestone != tc.want {
				t.Errorf("получили (%v, %v), хотели (%v, %v)", milestone, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestMilestoneSkippedOnJump(t *testing.T) {
	// Скачок с 20% сразу на 60% пропускает рубежи 25% и 50%: окно срабатывания узкое
	milestone, ok := evaluation.MilestoneHit(decimal.NewFromInt(600), decimal.NewFromInt(1000))
	if ok {
		t.Errorf("скачок мимо окна не должен давать рубеж, получили %v", milestone)
	}
}
