package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Разбор нестрого типизированных JSON-значений из тел запросов.
// Формы шлют числа строками, а клиенты иногда шлют id числом.

func nonEmptyString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// scalarText возвращает текстовую форму истинного скаляра: строки как есть,
// числа в десятичной записи, true как "true". Пустая строка, 0, false, null,
// объекты и массивы дают false.
func scalarText(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "":
		return "", false
	case trimmed[0] == '"':
		var s string
		if json.Unmarshal(raw, &s) != nil || s == "" {
			return "", false
		}
		return s, true
	case trimmed == "true":
		return "true", true
	case isJSONNumber(raw):
		var n float64
		if json.Unmarshal(raw, &n) != nil || n == 0 {
			return "", false
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// looseNumber принимает JSON-число или строку с числом ("16", " 8 ").
func looseNumber(raw json.RawMessage) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	var n float64
	if isJSONNumber(raw) {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, false
		}
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// textList разбирает массив скаляров; одиночный скаляр становится списком из одного элемента.
// Ложное или отсутствующее значение даёт nil.
func textList(raw json.RawMessage) []string {
	if !isTruthyJSON(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s, ok := scalarText(raw); ok {
			return []string{s}
		}
		return nil
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := scalarText(item); ok {
			list = append(list, s)
		}
	}
	return list
}

func isJSONNumber(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && (trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9'))
}

// isTruthyJSON повторяет правила истинности JS для JSON-значения.
func isTruthyJSON(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", `""`:
		return false
	}
	if isJSONNumber(raw) {
		var n float64
		return json.Unmarshal(raw, &n) == nil && n != 0
	}
	return true
}

// wholeNumber пропускает только целые значения, помещающиеся в integer-колонку max_teams.
func wholeNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
