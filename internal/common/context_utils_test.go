package common

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUUID(t *testing.T) {
	id := uuid.New()

	parsed, err := ValidateUUID(id.String(), "property_id")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ValidateUUID("", "property_id")
	assert.EqualError(t, err, "property_id is required")

	_, err = ValidateUUID("   ", "property_id")
	assert.EqualError(t, err, "property_id is required")

	_, err = ValidateUUID("not-a-uuid", "property_id")
	assert.ErrorContains(t, err, "property_id is not a valid UUID")

	parsed, err = ValidateUUID("  "+id.String()+"  ", "property_id")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestValidateRequiredString(t *testing.T) {
	assert.NoError(t, ValidateRequiredString("Sunset Apartments", "name"))
	assert.EqualError(t, ValidateRequiredString("", "name"), "name is required")
	assert.EqualError(t, ValidateRequiredString("   ", "name"), "name is required")
}

func TestValidatePositiveFloat(t *testing.T) {
	assert.NoError(t, ValidatePositiveFloat(1450.50, "rent_amount", 1000000))
	assert.EqualError(t, ValidatePositiveFloat(0, "rent_amount", 1000000), "rent_amount must be positive")
	assert.EqualError(t, ValidatePositiveFloat(-10, "rent_amount", 1000000), "rent_amount must be positive")
	assert.EqualError(t, ValidatePositiveFloat(100.01, "percentage", 100), "percentage cannot exceed 100.00")
}

func TestValidateDateFormat(t *testing.T) {
	date, err := ValidateDateFormat("2026-09-01", "start_date")
	require.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, "September", date.Month().String())
	assert.Equal(t, 1, date.Day())

	date, err = ValidateDateFormat("  2026-09-01  ", "start_date")
	require.NoError(t, err)
	assert.Equal(t, 1, date.Day())

	_, err = ValidateDateFormat("09/01/2026", "start_date")
	assert.EqualError(t, err, "start_date must be in YYYY-MM-DD format")

	_, err = ValidateDateFormat("", "start_date")
	assert.EqualError(t, err, "start_date must be in YYYY-MM-DD format")
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, 0)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(-5, -10)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(2000, 25)
	assert.Equal(t, 1000, limit)
	assert.Equal(t, 25, offset)

	limit, offset = ValidatePaginationParams(100, 200)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 200, offset)
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))

	value := "hello"
	assert.Equal(t, "hello", SafeString(&value))
}

func TestUserIDContextRoundTrip(t *testing.T) {
	userID := uuid.New()

	ctx := WithUserID(context.Background(), userID)
	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestCreateErrorResponse(t *testing.T) {
	resp := CreateErrorResponse("VALIDATION_ERROR", "Validation failed", map[string]string{"name": "name is required"})
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "Validation failed", resp.Error.Message)
	assert.Equal(t, "name is required", resp.Error.Details["name"])
}
