package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "****-****-****-3456", MaskCard("1234-5678-9012-3456"))
	assert.Equal(t, "****-****-****-3456", MaskCard("1234567890123456"))
	assert.Equal(t, "1234", MaskCard("1234"))
	assert.Equal(t, "", MaskCard(""))
}

func TestSoftDeleteValues(t *testing.T) {
	values := SoftDeleteValues("admin1")
	assert.Equal(t, "admin1", values["deleted_by"])

	deletedAt, ok := values["deleted_at"].(time.Time)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), deletedAt, time.Second)
}
