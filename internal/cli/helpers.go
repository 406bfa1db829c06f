package cli

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

var keyReplacer = strings.NewReplacer("-", " ", "_", " ", "í", "i", "Í", "i")

// normalizeKey lets "en-progreso", "EN_PROGRESO" and "En progreso" match
func normalizeKey(s string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ParseID parses a positive integer argument; what names it in the error
func ParseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, UsageError("%s debe ser un entero positivo, no %q", what, arg)
	}
	return id, nil
}

// ParseEstado maps an estado name to its value
func ParseEstado(s string) (models.Estado, error) {
	key := normalizeKey(s)
	for _, e := range models.Estados {
		if normalizeKey(string(e)) == key {
			return e, nil
		}
	}
	return "", ValidationError("estado inválido %q (debe ser: %s)", s, joinEstados())
}

// ParsePrioridad maps a prioridad name to its value
func ParsePrioridad(s string) (models.Prioridad, error) {
	key := normalizeKey(s)
	for _, p := range models.Prioridades {
		if normalizeKey(string(p)) == key {
			return p, nil
		}
	}
	names := make([]string, len(models.Prioridades))
	for i, p := range models.Prioridades {
		names[i] = string(p)
	}
	return "", ValidationError("prioridad inválida %q (debe ser: %s)", s, strings.Join(names, ", "))
}

// ParseEtiquetas splits a comma separated list, dropping blanks
func ParseEtiquetas(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseFecha accepts YYYY-MM-DD (local midnight) or RFC 3339
func ParseFecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, DataError("fecha inválida %q (formato: AAAA-MM-DD)", s)
}

// ParseHoras parses a non-negative number of hours
func ParseHoras(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || h < 0 {
		return 0, DataError("horas inválidas %q", s)
	}
	return h, nil
}

// ReadText returns value, or all of stdin when value is "-"
func ReadText(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", DataError("no se pudo leer stdin: %v", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func joinEstados() string {
	names := make([]string, len(models.Estados))
	for i, e := range models.Estados {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
