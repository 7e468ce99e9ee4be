package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name  string `validate:"required,max=5"`
	Count int    `validate:"min=1"`
	Date  string `validate:"required,datetime=2006-01-02"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Name: "ok", Count: 1, Date: "2026-10-19"})
	assert.Empty(t, errs)

	errs = ValidateStruct(sampleRequest{Name: "too long", Count: 0, Date: "19/10/2026"})
	assert.Equal(t, "Maximum length is 5", errs["Name"])
	assert.Equal(t, "Must be at least 1", errs["Count"])
	assert.Equal(t, "Must match the format 2006-01-02", errs["Date"])
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"Title": "This field is required",
		"Price": "Must be at least 0",
	})
	assert.Equal(t, "Price: Must be at least 0; Title: This field is required", msg)
}
