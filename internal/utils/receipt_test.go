package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/grschool/sms_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptNumber(t *testing.T) {
	now := time.Date(2026, 2, 14, 15, 30, 45, 0, time.UTC)
	got := utils.GenerateReceiptNumber(now)

	re := regexp.MustCompile(`^RCP-20260214153045-\d{4}$`)
	require.Regexp(t, re, got)
}

func TestFormatDisplayID(t *testing.T) {
	assert.Equal(t, "GRS/2026/001", utils.FormatDisplayID("GRS", 2026, 1))
	assert.Equal(t, "GRS/2026/014", utils.FormatDisplayID("GRS", 2026, 14))
	assert.Equal(t, "TCH/2025/123", utils.FormatDisplayID("TCH", 2025, 123))
	assert.Equal(t, "BUR/2026/002", utils.FormatDisplayID("BUR", 2026, 2))
	// Sequences past three digits keep their full width rather than wrapping.
	assert.Equal(t, "GRS/2026/1042", utils.FormatDisplayID("GRS", 2026, 1042))
}
