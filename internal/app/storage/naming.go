package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
)

// GenerateFileName строит контентно-адресуемое имя объекта:
// первые 8 hex символов SHA-256 от содержимого, дефис, случайный
// 4-значный десятичный суффикс и расширение исходного файла.
// Одинаковое содержимое даёт одинаковый префикс, суффикс защищает
// от перезаписи при повторной загрузке того же файла
func GenerateFileName(data []byte, originalName string) string {
	digest := sha256.Sum256(data)
	prefix := hex.EncodeToString(digest[:])[:8]

	ext := strings.ToLower(filepath.Ext(originalName))

	return fmt.Sprintf("%s-%04d%s", prefix, rand.Intn(10000), ext)
}
