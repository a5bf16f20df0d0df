package filetype

import (
	"bytes"
	"strings"
)

// Таблица сигнатур поддерживаемых форматов изображений
var signatures = []struct {
	mime  string
	match func(data []byte) bool
}{
	{"image/jpeg", func(data []byte) bool {
		return bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF})
	}},
	{"image/png", func(data []byte) bool {
		return bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	}},
	{"image/gif", func(data []byte) bool {
		return bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))
	}},
	{"image/webp", func(data []byte) bool {
		// Контейнер RIFF с типом WEBP на смещении 8
		return len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
	}},
	{"image/svg+xml", func(data []byte) bool {
		// SVG — текстовый формат, проверяем начало документа
		probe := data
		if len(probe) > 512 {
			probe = probe[:512]
		}
		text := strings.TrimSpace(string(probe))
		return strings.HasPrefix(text, "<svg") ||
			(strings.HasPrefix(text, "<?xml") && strings.Contains(text, "<svg"))
	}},
}

// SniffType определяет MIME тип по содержимому файла.
// Возвращает пустую строку, если тип не распознан (в том числе для пустого буфера)
func SniffType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	for _, sig := range signatures {
		if sig.match(data) {
			return sig.mime
		}
	}
	return ""
}

// Validator проверяет тип загружаемого файла по allow-list из конфигурации
type Validator struct {
	allowed     map[string]bool
	trustClient bool
}

func NewValidator(allowedTypes []string, trustClient bool) *Validator {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &Validator{
		allowed:     allowed,
		trustClient: trustClient,
	}
}

// Validate принимает файл, если заявленный тип входит в allow-list и
// сигнатура содержимого совпадает с заявленным типом.
// В легаси-режиме trustClient сигнатура не проверяется — заявленному
// типу верят на слово
func (v *Validator) Validate(data []byte, declaredType string) bool {
	declared := strings.ToLower(strings.TrimSpace(declaredType))
	// Параметры вида "; charset=utf-8" не участвуют в сравнении
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}

	if !v.allowed[declared] {
		return false
	}

	if v.trustClient {
		return true
	}

	return SniffType(data) == declared
}
