package schema

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantMsg string
	}{
		{name: "json number", in: float64(2400), want: 2400},
		{name: "numeric string", in: "2400", want: 2400},
		{name: "padded string", in: " 300 ", want: 300},
		{name: "leading zero is decimal", in: "010", want: 10},
		{name: "negative string", in: "-5", want: -5},
		{name: "fraction", in: 12.5, wantMsg: "Expected integer"},
		{name: "fraction string", in: "12.5", wantMsg: "Expected integer"},
		{name: "word", in: "cheap", wantMsg: "Expected number"},
		{name: "blank", in: "  ", wantMsg: "Expected number"},
		{name: "null", in: nil, wantMsg: "Expected number"},
		{name: "bool", in: true, wantMsg: "Expected number"},
		{name: "too large", in: float64(1 << 40), wantMsg: "Number must be less than or equal to 2147483647"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := CoerceInt(tt.in)
			assert.Equal(t, tt.wantMsg, msg)
			if tt.wantMsg == "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		in     any
		want   bool
		wantOK bool
	}{
		{in: true, want: true, wantOK: true},
		{in: false, want: false, wantOK: true},
		{in: "true", want: true, wantOK: true},
		{in: "false", want: false, wantOK: true},
		{in: "on", want: true, wantOK: true},
		{in: "off", want: false, wantOK: true},
		{in: "1", want: true, wantOK: true},
		{in: "maybe", wantOK: false},
		{in: nil, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := CoerceBool(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %#v", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "input %#v", tt.in)
		}
	}
}

func TestCoerceNullableString(t *testing.T) {
	s, ok := CoerceNullableString(nil)
	assert.True(t, ok)
	assert.Nil(t, s)

	s, ok = CoerceNullableString("   ")
	assert.True(t, ok)
	assert.Nil(t, s)

	s, ok = CoerceNullableString("/images/maple.jpg")
	require.True(t, ok)
	require.NotNil(t, s)
	assert.Equal(t, "/images/maple.jpg", *s)

	_, ok = CoerceNullableString(42.0)
	assert.False(t, ok)
}

func TestCoerce_CreateModeRequiresFieldsInOrder(t *testing.T) {
	rules := []FieldRule{
		{Name: "first", Kind: KindString, Required: true},
		{Name: "second", Kind: KindInt, Required: true},
	}

	_, err := Coerce(Raw{}, rules, ModeCreate)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "first", verr.Field)
	assert.Equal(t, "Required", verr.Message)

	_, err = Coerce(Raw{"first": "x", "second": "abc"}, rules, ModeCreate)
	verr, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "second", verr.Field)
	assert.Equal(t, "Expected number", verr.Message)
}

func TestCoerce_DefaultsAndUnknownKeys(t *testing.T) {
	rules := []FieldRule{
		{Name: "flag", Kind: KindBool, Default: true},
		{Name: "count", Kind: KindInt, Default: 0},
	}

	v, err := Coerce(Raw{"id": "sneaky", "createdAt": "2020-01-01"}, rules, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, Values{"flag": true, "count": 0}, v)

	v, err = Coerce(Raw{"id": "sneaky"}, rules, ModePatch)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRawFromForm(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Maple")
	form.Set("price", "2400")
	form.Set("isAvailable", "on")

	in, err := PuppyInputFromRaw(RawFromForm(form))
	require.Error(t, err)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "breed", verr.Field)

	form.Set("breed", "Goldendoodle")
	form.Set("sex", "Female")
	form.Set("age", "10 weeks")
	form.Set("temperament", "Calm")
	form.Set("shortDescription", "Sweet")
	form.Set("description", "Very sweet")
	form.Set("imageUrl", "")

	in, err = PuppyInputFromRaw(RawFromForm(form))
	require.NoError(t, err)
	assert.Equal(t, 2400, in.Price)
	assert.Equal(t, 0, in.DepositAmount)
	assert.True(t, in.IsAvailable)
	assert.Nil(t, in.ImageURL)
}

func TestDecodeRaw(t *testing.T) {
	_, err := DecodeRaw(nil)
	assert.Error(t, err)

	_, err = DecodeRaw([]byte("{not json"))
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid JSON body", verr.Message)

	_, err = DecodeRaw([]byte("null"))
	assert.Error(t, err)

	raw, err := DecodeRaw([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, float64(1), raw["a"])
}
