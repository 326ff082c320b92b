package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
)

func validEntryInput() CreateEntryInput {
	return CreateEntryInput{
		ProjectID:   1,
		EntryDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Hours:       7.5,
		Description: "implemented the reporting export",
	}
}

func fieldNames(err *apperr.Error) []string {
	names := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateCreateEntry(t *testing.T) {
	limits := models.DefaultEntryLimits

	t.Run("valid input", func(t *testing.T) {
		assert.Nil(t, validateCreateEntry(validEntryInput(), limits))
	})

	t.Run("missing project and date", func(t *testing.T) {
		in := validEntryInput()
		in.ProjectID = 0
		in.EntryDate = time.Time{}

		err := validateCreateEntry(in, limits)
		require.NotNil(t, err)
		assert.Equal(t, apperr.KindValidation, err.Kind)
		assert.ElementsMatch(t, []string{"project_id", "entry_date"}, fieldNames(err))
	})

	t.Run("hours bounds", func(t *testing.T) {
		for _, hours := range []float64{0, 0.1, -1, 12.5, 25} {
			in := validEntryInput()
			in.Hours = hours
			err := validateCreateEntry(in, limits)
			require.NotNil(t, err, "hours=%v", hours)
			assert.Contains(t, fieldNames(err), "hours", "hours=%v", hours)
		}
		for _, hours := range []float64{0.25, 8, 12} {
			in := validEntryInput()
			in.Hours = hours
			assert.Nil(t, validateCreateEntry(in, limits), "hours=%v", hours)
		}
	})

	t.Run("raised max hours setting widens the bound", func(t *testing.T) {
		in := validEntryInput()
		in.Hours = 16
		assert.NotNil(t, validateCreateEntry(in, limits))
		assert.Nil(t, validateCreateEntry(in, models.EntryLimits{MaxHoursPerDay: 16, MinDescriptionLength: 10}))
	})

	t.Run("max hours setting never exceeds a day", func(t *testing.T) {
		in := validEntryInput()
		in.Hours = 30
		err := validateCreateEntry(in, models.EntryLimits{MaxHoursPerDay: 100, MinDescriptionLength: 10})
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "hours")
	})

	t.Run("short description", func(t *testing.T) {
		in := validEntryInput()
		in.Description = "fix bug"
		err := validateCreateEntry(in, limits)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "description")
	})

	t.Run("whitespace padding does not satisfy the minimum", func(t *testing.T) {
		in := validEntryInput()
		in.Description = "short     \t\t\t      "
		err := validateCreateEntry(in, limits)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "description")
	})
}

func TestValidateUpdateEntry(t *testing.T) {
	limits := models.DefaultEntryLimits

	t.Run("empty update rejected", func(t *testing.T) {
		err := validateUpdateEntry(UpdateEntryInput{}, limits)
		require.NotNil(t, err)
		assert.Equal(t, apperr.KindValidation, err.Kind)
	})

	t.Run("partial update validates only provided fields", func(t *testing.T) {
		hours := 6.0
		assert.Nil(t, validateUpdateEntry(UpdateEntryInput{Hours: &hours}, limits))

		bad := 0.1
		err := validateUpdateEntry(UpdateEntryInput{Hours: &bad}, limits)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "hours")
	})

	t.Run("description checked when present", func(t *testing.T) {
		desc := "too short"
		err := validateUpdateEntry(UpdateEntryInput{Description: &desc}, limits)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "description")
	})
}

func TestValidateCreateUser(t *testing.T) {
	valid := CreateUserInput{
		Name:     "Eve Employee",
		Email:    "eve@example.com",
		Password: "secret1",
		Role:     models.RoleEmployee,
	}

	t.Run("valid input", func(t *testing.T) {
		assert.Nil(t, validateCreateUser(valid))
	})

	t.Run("bad email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "a b@c.com"} {
			in := valid
			in.Email = email
			err := validateCreateUser(in)
			require.NotNil(t, err, "email=%q", email)
			assert.Contains(t, fieldNames(err), "email", "email=%q", email)
		}
	})

	t.Run("short password", func(t *testing.T) {
		in := valid
		in.Password = "12345"
		err := validateCreateUser(in)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "password")
	})

	t.Run("unknown role", func(t *testing.T) {
		in := valid
		in.Role = "superuser"
		err := validateCreateUser(in)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "role")
	})
}

func TestValidateUpdateUser(t *testing.T) {
	t.Run("status must be known", func(t *testing.T) {
		bad := "suspended"
		err := validateUpdateUser(UpdateUserInput{Status: &bad})
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "status")

		ok := models.StatusInactive
		assert.Nil(t, validateUpdateUser(UpdateUserInput{Status: &ok}))
	})

	t.Run("name must not be blanked", func(t *testing.T) {
		blank := "   "
		err := validateUpdateUser(UpdateUserInput{Name: &blank})
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "name")
	})
}

func TestValidateCreateProject(t *testing.T) {
	valid := CreateProjectInput{Code: "INT-001", Name: "Internal Tooling"}

	t.Run("valid input", func(t *testing.T) {
		assert.Nil(t, validateCreateProject(valid))
	})

	t.Run("code and name required", func(t *testing.T) {
		err := validateCreateProject(CreateProjectInput{Code: " ", Name: ""})
		require.NotNil(t, err)
		assert.ElementsMatch(t, []string{"code", "name"}, fieldNames(err))
	})

	t.Run("negative billing rate", func(t *testing.T) {
		in := valid
		in.BillingRate = -1
		err := validateCreateProject(in)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "billing_rate")
	})
}
