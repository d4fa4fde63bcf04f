package crud

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind is the input control a form field renders as.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindSelect   FieldKind = "select"
	KindTextarea FieldKind = "textarea"
	KindCheckbox FieldKind = "checkbox"
	KindDate     FieldKind = "date"
	KindNumber   FieldKind = "number"
	KindFile     FieldKind = "file"
	KindRadio    FieldKind = "radio"
)

// Option is one choice of a select or radio field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input. Validate returns "" when the value is
// acceptable.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option
	Validate func(value any, draft Draft) string
}

// Draft holds in-progress form values by field key.
type Draft map[string]any

// String returns the value under key as display text.
func (d Draft) String(key string) string {
	return Stringify(d[key])
}

// Patch converts the draft into a persistence patch.
func (d Draft) Patch() Patch {
	out := make(Patch, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FormValidator checks the draft as a whole and returns field-keyed errors.
type FormValidator func(draft Draft) map[string]string

// Form tracks a draft, its per-field errors and submission status.
type Form struct {
	fields     []Field
	validate   FormValidator
	values     Draft
	errors     map[string]string
	submitting bool
}

// NewForm builds a form over the given fields. validate may be nil.
func NewForm(fields []Field, validate FormValidator) *Form {
	f := &Form{fields: fields, validate: validate}
	f.ResetForm()
	return f
}

// EmptyDraft returns a draft with "" under every field key.
func EmptyDraft(fields []Field) Draft {
	d := make(Draft, len(fields))
	for _, field := range fields {
		d[field.Key] = ""
	}
	return d
}

// Fields returns the field descriptors.
func (f *Form) Fields() []Field { return f.fields }

// Values returns a copy of the draft.
func (f *Form) Values() Draft {
	out := make(Draft, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Value returns the current value of one field.
func (f *Form) Value(key string) any { return f.values[key] }

// SetValues replaces the draft, keeping only configured keys. Errors are
// cleared since they described the old values.
func (f *Form) SetValues(d Draft) {
	next := EmptyDraft(f.fields)
	for k := range next {
		if v, ok := d[k]; ok && v != nil {
			next[k] = v
		}
	}
	f.values = next
	f.errors = map[string]string{}
}

// Patch converts the draft into typed values for persistence. Text typed
// into number fields parses to float64 and blank numbers become nil.
// Checkbox text becomes a bool.
func (f *Form) Patch() Patch {
	out := f.Values().Patch()
	for _, field := range f.fields {
		s, ok := out[field.Key].(string)
		if !ok {
			continue
		}
		switch field.Kind {
		case KindNumber:
			s = strings.TrimSpace(s)
			if s == "" {
				out[field.Key] = nil
			} else if n, err := strconv.ParseFloat(s, 64); err == nil {
				out[field.Key] = n
			}
		case KindCheckbox:
			out[field.Key] = s == "true"
		}
	}
	return out
}

// Errors returns a copy of the error mapping.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the error for one field, or "".
func (f *Form) Error(key string) string { return f.errors[key] }

// Submitting reports whether a submit is running.
func (f *Form) Submitting() bool { return f.submitting }

// IsValid is true when no field currently holds an error. It does not mean
// every field has been validated.
func (f *Form) IsValid() bool { return len(f.errors) == 0 }

// UpdateField sets a value and clears that field's error. Validation runs
// only on explicit validate calls.
func (f *Form) UpdateField(key string, value any) {
	f.values[key] = value
	delete(f.errors, key)
}

// ValidateField re-checks one field against its required flag and custom
// validator and reports whether it passed.
func (f *Form) ValidateField(key string) bool {
	field, ok := f.field(key)
	if !ok {
		return true
	}
	if msg := f.check(field); msg != "" {
		f.errors[key] = msg
		return false
	}
	delete(f.errors, key)
	return true
}

// ValidateForm validates every field, then runs the whole-form validator.
// All fields are checked so the full error set is available at once.
func (f *Form) ValidateForm() bool {
	errs := map[string]string{}
	for _, field := range f.fields {
		if msg := f.check(field); msg != "" {
			errs[field.Key] = msg
		}
	}
	if f.validate != nil {
		for k, msg := range f.validate(f.Values()) {
			if msg == "" {
				continue
			}
			if _, exists := errs[k]; !exists {
				errs[k] = msg
			}
		}
	}
	f.errors = errs
	return len(errs) == 0
}

// ResetForm restores the empty draft and clears errors and submitting.
func (f *Form) ResetForm() {
	f.values = EmptyDraft(f.fields)
	f.errors = map[string]string{}
	f.submitting = false
}

// Submit validates the form and hands the draft to fn. The form resets when
// fn succeeds and keeps the draft when it fails. An invalid form returns
// false without calling fn.
func (f *Form) Submit(fn func(Draft) error) (bool, error) {
	if !f.BeginSubmit() {
		return false, nil
	}
	err := fn(f.Values())
	f.EndSubmit(err)
	return err == nil, err
}

// BeginSubmit validates and marks the form submitting. It returns false when
// the form is invalid or a submit is already running.
func (f *Form) BeginSubmit() bool {
	if f.submitting || !f.ValidateForm() {
		return false
	}
	f.submitting = true
	return true
}

// EndSubmit closes a submit started by BeginSubmit.
func (f *Form) EndSubmit(err error) {
	if err != nil {
		f.submitting = false
		return
	}
	f.ResetForm()
}

func (f *Form) field(key string) (Field, bool) {
	for _, field := range f.fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

func (f *Form) check(field Field) string {
	value := f.values[field.Key]
	if field.Required && isBlank(field, value) {
		return requiredMessage(field)
	}
	if field.Validate != nil {
		return field.Validate(value, f.Values())
	}
	return ""
}

func isBlank(field Field, value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return field.Kind == KindCheckbox && !v
	}
	return false
}

func requiredMessage(field Field) string {
	label := field.Label
	if label == "" {
		label = field.Key
	}
	return fmt.Sprintf("%s is required", label)
}
