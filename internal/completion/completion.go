// Package completion форматирует отметку о завершении перевозки.
//
// Старые записи хранили завершение в комментарии предложения в виде "COMPLETED_<ISO-время>".
// Сейчас завершение - это статус и completed_at, а пакет умеет читать обе формы.
package completion

import (
	"strings"
	"time"
)

const (
	MarkerPrefix = "COMPLETED_"
	Fallback     = "Completado (fecha no disponible)"

	labelLayout  = "02/01/2006 15:04"
	markerLayout = "2006-01-02T15:04:05.000Z07:00"
)

var guatemala = loadGuatemala()

func loadGuatemala() *time.Location {
	loc, err := time.LoadLocation("America/Guatemala")
	if err != nil {
		return time.FixedZone("CST", -6*60*60)
	}
	return loc
}

// HasMarker сообщает, содержит ли комментарий отметку завершения.
func HasMarker(comments string) bool {
	return strings.HasPrefix(strings.TrimSpace(comments), MarkerPrefix)
}

// Parse извлекает время из отметки; ok=false для строк без отметки или с битой датой.
func Parse(comments string) (time.Time, bool) {
	s := strings.TrimSpace(comments)
	if !strings.HasPrefix(s, MarkerPrefix) {
		return time.Time{}, false
	}
	raw := strings.TrimPrefix(s, MarkerPrefix)
	for _, layout := range []string{time.RFC3339Nano, markerLayout, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Label форматирует время завершения по-испански в часовом поясе Гватемалы.
func Label(at time.Time) string {
	return "Completado el: " + at.In(guatemala).Format(labelLayout)
}

// LabelFromComments возвращает подпись по старой отметке; для битой даты - Fallback, без отметки - "".
func LabelFromComments(comments string) string {
	if !HasMarker(comments) {
		return ""
	}
	t, ok := Parse(comments)
	if !ok {
		return Fallback
	}
	return Label(t)
}

// LabelFor подписывает только завершённые предложения: по completed_at, а если его нет -
// по старой отметке в комментарии. Отметка в комментарии незавершённого предложения игнорируется.
func LabelFor(completed bool, completedAt *time.Time, comments string) string {
	if !completed {
		return ""
	}
	if completedAt != nil && !completedAt.IsZero() {
		return Label(*completedAt)
	}
	return LabelFromComments(comments)
}
