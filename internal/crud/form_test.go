package crud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestFields() []Field {
	return []Field{
		{Key: "name", Label: "Name", Kind: KindText, Required: true},
		{Key: "email", Label: "Email", Kind: KindText, Validate: func(v any, _ Draft) string {
			s := Stringify(v)
			if s != "" && !strings.Contains(s, "@") {
				return "Email is invalid"
			}
			return ""
		}},
		{Key: "terms", Label: "Terms", Kind: KindCheckbox, Required: true},
		{Key: "check_in", Label: "Check-in", Kind: KindDate},
		{Key: "check_out", Label: "Check-out", Kind: KindDate},
	}
}

func stayOrder(d Draft) map[string]string {
	in, out := d.String("check_in"), d.String("check_out")
	if in != "" && out != "" && out <= in {
		return map[string]string{"check_out": "Check-out must be after check-in", "name": "ignored"}
	}
	return nil
}

func TestNewFormStartsEmpty(t *testing.T) {
	f := NewForm(guestFields(), nil)
	assert.Equal(t, Draft{"name": "", "email": "", "terms": "", "check_in": "", "check_out": ""}, f.Values())
	assert.True(t, f.IsValid())
	assert.False(t, f.Submitting())
}

func TestValidateFormCollectsAllErrors(t *testing.T) {
	f := NewForm(guestFields(), stayOrder)
	f.UpdateField("email", "nope")
	f.UpdateField("terms", false)
	f.UpdateField("check_in", "2026-05-02")
	f.UpdateField("check_out", "2026-05-01")

	assert.False(t, f.ValidateForm())
	assert.Equal(t, map[string]string{
		"name":      "Name is required",
		"email":     "Email is invalid",
		"terms":     "Terms is required",
		"check_out": "Check-out must be after check-in",
	}, f.Errors())
	assert.False(t, f.IsValid())
}

func TestUpdateFieldClearsOnlyThatError(t *testing.T) {
	f := NewForm(guestFields(), nil)
	f.ValidateForm()
	require.NotEmpty(t, f.Error("name"))
	require.NotEmpty(t, f.Error("terms"))

	f.UpdateField("name", "Alice")
	assert.Empty(t, f.Error("name"))
	assert.NotEmpty(t, f.Error("terms"))
}

func TestValidateFieldSingle(t *testing.T) {
	f := NewForm(guestFields(), nil)
	f.UpdateField("name", "   ")
	assert.False(t, f.ValidateField("name"))
	assert.Equal(t, "Name is required", f.Error("name"))

	f.UpdateField("name", "Bob")
	assert.True(t, f.ValidateField("name"))
	assert.True(t, f.ValidateField("unknown"))
	assert.True(t, f.IsValid())
}

func TestSetValuesKeepsConfiguredKeys(t *testing.T) {
	f := NewForm(guestFields(), nil)
	f.ValidateForm()
	f.SetValues(Draft{"name": "Alice", "extra": 1, "email": nil})

	assert.Equal(t, "Alice", f.Value("name"))
	assert.Equal(t, "", f.Value("email"))
	assert.NotContains(t, f.Values(), "extra")
	assert.True(t, f.IsValid())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	f := NewForm(guestFields(), nil)
	f.UpdateField("name", "Alice")
	f.UpdateField("terms", true)

	ok, err := f.Submit(func(Draft) error { return errRejected })
	assert.False(t, ok)
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "Alice", f.Value("name"))
	assert.False(t, f.Submitting())
}

func TestSubmitSuccessResets(t *testing.T) {
	f := NewForm(guestFields(), nil)
	f.UpdateField("name", "Alice")
	f.UpdateField("terms", true)

	var got Draft
	ok, err := f.Submit(func(d Draft) error {
		got = d
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Alice", got["name"])
	assert.Equal(t, "", f.Value("name"))
}

func TestSubmitInvalidSkipsCallback(t *testing.T) {
	f := NewForm(guestFields(), nil)
	called := false
	ok, err := f.Submit(func(Draft) error {
		called = true
		return nil
	})
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestBeginSubmitRejectsConcurrentSubmit(t *testing.T) {
	f := NewForm([]Field{{Key: "name", Label: "Name"}}, nil)
	require.True(t, f.BeginSubmit())
	assert.True(t, f.Submitting())
	assert.False(t, f.BeginSubmit())

	f.EndSubmit(errRejected)
	assert.False(t, f.Submitting())
	assert.True(t, f.BeginSubmit())
}

func TestDraftPatch(t *testing.T) {
	d := Draft{"name": "Alice", "vip": true}
	p := d.Patch()
	p["name"] = "changed"
	assert.Equal(t, "Alice", d["name"])
	assert.Equal(t, "true", d.String("vip"))
}

func TestFormPatchCoercesKinds(t *testing.T) {
	f := NewForm([]Field{
		{Key: "name", Kind: KindText},
		{Key: "price", Kind: KindNumber},
		{Key: "rating", Kind: KindNumber},
		{Key: "stock", Kind: KindNumber},
		{Key: "available", Kind: KindCheckbox},
		{Key: "featured", Kind: KindCheckbox},
	}, nil)
	f.SetValues(Draft{"name": "42", "price": " 12.5 ", "rating": "", "stock": 3.0, "available": "true", "featured": true})

	assert.Equal(t, Patch{
		"name":      "42",
		"price":     12.5,
		"rating":    nil,
		"stock":     3.0,
		"available": true,
		"featured":  true,
	}, f.Patch())
}
