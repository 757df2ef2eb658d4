package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("6f1c2f0e-8a55-4a7e-9d5f-0c1d2e3f4a5b")
	at := time.Date(2024, 7, 9, 15, 4, 5, 0, time.UTC)

	key := ObjectKey("invoices", "Q3 report.xlsx", at, id)
	assert.Equal(t, "uploads/invoices/2024-07-09/6f1c2f0e-8a55-4a7e-9d5f-0c1d2e3f4a5b-Q3_report.xlsx", key)
}

func TestObjectKey_StripsDirectories(t *testing.T) {
	key := ObjectKey("meetings", `..\..\etc/passwd`, time.Now(), uuid.New())
	assert.True(t, strings.HasSuffix(key, "-passwd"))
	assert.NotContains(t, key, "..")
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/octet-stream", contentTypeFor("notes"))
	assert.Equal(t, "application/pdf", contentTypeFor("report.PDF"))
}
