package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFileName(t *testing.T) {
	namePattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9]{4}\.png$`)

	t.Run("Format", func(t *testing.T) {
		name := GenerateFileName([]byte("some image bytes"), "photo.PNG")
		assert.Regexp(t, namePattern, name)
	})

	t.Run("Identical Content Gives Identical Prefix", func(t *testing.T) {
		data := []byte("identical content")
		a := GenerateFileName(data, "a.png")
		b := GenerateFileName(data, "b.png")
		assert.Equal(t, a[:8], b[:8])
	})

	t.Run("Different Content Gives Different Prefix", func(t *testing.T) {
		a := GenerateFileName([]byte("content one"), "a.png")
		b := GenerateFileName([]byte("content two"), "b.png")
		assert.NotEqual(t, a[:8], b[:8])
	})

	t.Run("Random Suffix Varies", func(t *testing.T) {
		// При 50 генерациях для одного содержимого хотя бы два разных
		// суффикса: вероятность совпадения всех 50 исчезающе мала
		data := []byte("same bytes")
		suffixes := make(map[string]bool)
		for i := 0; i < 50; i++ {
			name := GenerateFileName(data, "x.png")
			require.Len(t, name, 8+1+4+4)
			suffixes[name[9:13]] = true
		}
		assert.Greater(t, len(suffixes), 1)
	})

	t.Run("No Extension", func(t *testing.T) {
		name := GenerateFileName([]byte("data"), "noext")
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9]{4}$`, name)
	})

	t.Run("Extension Lowercased", func(t *testing.T) {
		name := GenerateFileName([]byte("data"), "IMG_0001.JPEG")
		assert.Regexp(t, `\.jpeg$`, name)
	})
}
