package validator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	blank := "   "
	name := "A"
	tests := []struct {
		name string
		in   interface{}
		want bool
	}{
		{"nil", nil, false},
		{"空字符串", "", false},
		{"空白字符串", " \t\n", false},
		{"普通字符串", "x", true},
		{"数字0", 0, true},
		{"false", false, true},
		{"空白指针", &blank, false},
		{"nil指针", (*string)(nil), false},
		{"有效指针", &name, true},
		{"JSON null", json.RawMessage("null"), false},
		{"JSON空串", json.RawMessage(`"  "`), false},
		{"JSON数字0", json.RawMessage("0"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestIsValidReqBody(t *testing.T) {
	assert.False(t, IsValidReqBody(nil))
	assert.False(t, IsValidReqBody(map[string]json.RawMessage{}))
	assert.True(t, IsValidReqBody(map[string]json.RawMessage{"title": json.RawMessage(`"T"`)}))
}

func TestFormatPredicates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		ok   []string
		bad  []string
	}{
		{"ObjectID", IsValidObjectID,
			[]string{"65a1f0c2e4b0a1b2c3d4e5f6", "000000000000000000000000"},
			[]string{"", "65a1f0c2e4b0a1b2c3d4e5f", "zza1f0c2e4b0a1b2c3d4e5f6", ":bookId"}},
		{"Email", IsValidEmail,
			[]string{"a@b.com", "john.doe@mail.co.in", "x-y@d-e.org"},
			[]string{"", "a@b", "@b.com", "a@b.comcom", "a b@c.com"}},
		{"Phone", IsValidPhone,
			[]string{"9876543210", "+919876543210", "+91-9876543210", "+1 9876543210"},
			[]string{"987654321", "98765432101", "phone12345", "+12345-9876543210"}},
		{"Pincode", IsValidPincode,
			[]string{"123456", "560 001"},
			[]string{"012345", "12345", "1234567", "12a456"}},
		{"ISBN", IsValidISBN,
			[]string{"1234567890", "978-3-16-148410-0", "9783161484100", "0 306 40615 2"},
			[]string{"123456789", "12345678901", "97831614841000", "123456789X"}},
		{"ReleasedAt", IsValidRelAt,
			[]string{"2020-01-01", "2024-02-29"},
			[]string{"2020-1-1", "01-01-2020", "2023-02-29", "2020-13-01", "2020/01/01"}},
		{"Password", IsValidPassword,
			[]string{"secret12", "123456789012345"},
			[]string{"short", "1234567", "1234567890123456"}},
		{"Title", IsValidTitle,
			[]string{"Mr", "Mrs", "Miss"},
			[]string{"mr", "Dr", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.ok {
				assert.True(t, tt.fn(v), "期望有效: %q", v)
			}
			for _, v := range tt.bad {
				assert.False(t, tt.fn(v), "期望无效: %q", v)
			}
		})
	}
}

func TestIsValidRating(t *testing.T) {
	for _, r := range []float64{1, 2, 3, 4, 5} {
		assert.True(t, IsValidRating(r), "rating=%v", r)
	}
	for _, r := range []float64{0, 6, -1, 4.5, math.NaN()} {
		assert.False(t, IsValidRating(r), "rating=%v", r)
	}
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type query struct {
		UserID string `validate:"omitempty,objectid"`
		ISBN   string `validate:"omitempty,isbn"`
		Date   string `validate:"omitempty,reldate"`
	}

	assert.NoError(t, v.Struct(query{}))
	assert.NoError(t, v.Struct(query{UserID: "65a1f0c2e4b0a1b2c3d4e5f6", ISBN: "1234567890", Date: "2020-01-01"}))
	assert.Error(t, v.Struct(query{UserID: "abc"}))
	assert.Error(t, v.Struct(query{ISBN: "12"}))
	assert.Error(t, v.Struct(query{Date: "2020-02-30"}))

	type filter struct {
		UserID string `validate:"objectid_or_blank"`
	}
	for _, id := range []string{"", "   ", " 65a1f0c2e4b0a1b2c3d4e5f6 "} {
		assert.NoError(t, v.Struct(filter{UserID: id}), "userId=%q", id)
	}
	assert.Error(t, v.Struct(filter{UserID: " abc "}))
}
