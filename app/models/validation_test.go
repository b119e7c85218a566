package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     *string `json:"name" validate:"required,size=0-10"`
	Email    *string `json:"email" validate:"required,email,size=2-255"`
	Password *string `json:"password" validate:"required,password"`
	OwnerID  *int64  `json:"ownerId" validate:"required,gt=0"`
}

func strp(s string) *string { return &s }
func intp(i int64) *int64   { return &i }

func validSample() sample {
	return sample{
		Name:     strp("ann"),
		Email:    strp("ann@example.com"),
		Password: strp("12345678"),
		OwnerID:  intp(1),
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *sample)
		want   map[string]string
	}{
		{
			name:   "valid",
			mutate: func(s *sample) {},
		},
		{
			name:   "empty string is present",
			mutate: func(s *sample) { s.Name = strp("") },
		},
		{
			name:   "nil is missing",
			mutate: func(s *sample) { s.Name = nil },
			want:   map[string]string{"name": "must not be null"},
		},
		{
			name:   "too long",
			mutate: func(s *sample) { s.Name = strp(strings.Repeat("x", 11)) },
			want:   map[string]string{"name": "size must be between 0 and 10"},
		},
		{
			name:   "bad email",
			mutate: func(s *sample) { s.Email = strp("not-an-email") },
			want:   map[string]string{"email": "must be a well-formed email address"},
		},
		{
			name:   "short password",
			mutate: func(s *sample) { s.Password = strp("1234567") },
			want:   map[string]string{"password": "Password does not meet our requirements"},
		},
		{
			name:   "zero owner",
			mutate: func(s *sample) { s.OwnerID = intp(0) },
			want:   map[string]string{"ownerId": "must be greater than 0"},
		},
		{
			name: "several fields",
			mutate: func(s *sample) {
				s.Name = nil
				s.OwnerID = intp(-3)
			},
			want: map[string]string{
				"name":    "must not be null",
				"ownerId": "must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSample()
			tt.mutate(&s)
			err := ValidateStruct(s)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, CodeValidation, appErr.Code)
			assert.Equal(t, tt.want, appErr.Fields)
		})
	}
}

func TestPasswordCountsRunes(t *testing.T) {
	s := validSample()
	s.Password = strp("ääääääää")
	assert.NoError(t, ValidateStruct(s))
}

func TestParseSize(t *testing.T) {
	lo, hi, err := parseSize("2-255")
	require.NoError(t, err)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 255, hi)

	_, _, err = parseSize("255")
	assert.Error(t, err)
	_, _, err = parseSize("a-1")
	assert.Error(t, err)
}
