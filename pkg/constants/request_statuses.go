package constants

// Статусы жизненного цикла заявки.
const (
	RequestStatusNew       = "Новая"
	RequestStatusInWork    = "В работе"
	RequestStatusCompleted = "Завершена"
)

var RequestStatuses = []string{
	RequestStatusNew,
	RequestStatusInWork,
	RequestStatusCompleted,
}
