package models

// BalanceResponse баланс вождения студента
// Минуты - точное значение, часы - целая часть для отображения
type BalanceResponse struct {
	StudentID      int64 `json:"studentId"`
	BalanceMinutes int   `json:"balanceMinutes"`
	BalanceHours   int   `json:"balanceHours"`
}
