// internal/domain/homework/homework.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

// Keys of the homework_statuses API payload.
const (
	HomeworksKey   = "homeworks"
	CurrentDateKey = "current_date"
	NameKey        = "homework_name"
	StatusKey      = "status"
)

// Record is a single loosely-typed homework entry as decoded from JSON.
type Record map[string]any

// Status codes reported by the review API.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// VerdictTable maps a status code to the text shown to the student.
type VerdictTable map[string]string

// DefaultVerdicts returns the verdicts for the known status codes.
func DefaultVerdicts() VerdictTable {
	return VerdictTable{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}

// CheckResponse validates the shape of a decoded API body and returns the
// homework list unchanged. An empty list is not an error.
func CheckResponse(body any) ([]any, error) {
	response, ok := body.(map[string]any)
	if !ok {
		return nil, NewError(KindMalformedResponse,
			"Ожидался словарь в ответе API, но получен объект типа %s", typeName(body))
	}

	raw, found := response[HomeworksKey]
	if !found || raw == nil {
		return nil, NewError(KindHomeworksNotFound, "Не найден ключ %s в ответе API", HomeworksKey)
	}

	homeworks, ok := raw.([]any)
	if !ok {
		return nil, NewError(KindMalformedResponse,
			"Ожидался список под ключом %q, но получен объект типа %s", HomeworksKey, typeName(raw))
	}
	return homeworks, nil
}

// ParseStatus turns one homework entry into the notification text.
func ParseStatus(entry any, verdicts VerdictTable) (string, error) {
	record, ok := asRecord(entry)
	if !ok {
		return "", NewError(KindMalformedResponse,
			"Ожидался словарь с домашней работой, но получен объект типа %s", typeName(entry))
	}

	name, found := record[NameKey]
	if !found || name == nil {
		return "", NewError(KindNameNotFound, "Название домашней работы не найдено")
	}
	status, found := record[StatusKey]
	if !found || status == nil {
		return "", NewError(KindStatusNotFound, "Статус домашней работы не найден")
	}

	code, ok := status.(string)
	if !ok {
		return "", NewError(KindUnexpectedStatus, "Неожиданный статус домашней работы: %v", status)
	}
	verdict, ok := verdicts[code]
	if !ok {
		return "", NewError(KindUnexpectedStatus, "Неожиданный статус домашней работы: %s", code)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%v\". %s", name, verdict), nil
}

// CurrentDate extracts the server-reported timestamp, if present and integral.
func CurrentDate(body any) (int64, bool) {
	response, ok := body.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := response[CurrentDateKey].(type) {
	case json.Number:
		ts, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return ts, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func asRecord(entry any) (Record, bool) {
	switch v := entry.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
