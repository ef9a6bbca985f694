package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/options"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/submit"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func loginSchema() model.Schema {
	return model.Schema{
		model.FieldDescriptor{ID: "email", Kind: model.KindEmail, Label: "Email"}.WithRequired("Enter a valid email"),
		model.FieldDescriptor{ID: "password", Kind: model.KindPassword, Label: "Password"}.WithRequired("Enter your password"),
	}
}

func productSchema() model.Schema {
	return model.Schema{
		model.FieldDescriptor{ID: "product_name", Kind: model.KindText}.WithRequired("Name is required"),
		model.FieldDescriptor{ID: "category", Kind: model.KindSelect, Label: "category"}.WithRequired("Pick a category"),
		model.FieldDescriptor{ID: "img_upload", Kind: model.KindFile}.WithRequired("Upload at least one image"),
		model.FieldDescriptor{ID: "rent_price", Kind: model.KindNumber, OptionalToggle: true}.WithRequired("Enter a rent price"),
	}
}

func mustForm(t *testing.T, schema model.Schema, opts ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(schema, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

type recorder struct {
	snapshots []submit.Snapshot
	err       error
}

func (r *recorder) Submit(_ context.Context, snapshot submit.Snapshot) error {
	if r.err != nil {
		return r.err
	}
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func TestNewStartsInvalidWithHiddenErrors(t *testing.T) {
	f := mustForm(t, loginSchema())

	if f.Valid() {
		t.Fatalf("expected fresh login form to be invalid")
	}
	want := validation.ErrorMap{
		"email":    {"Enter a valid email"},
		"password": {"Enter your password"},
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got := f.VisibleErrors("email"); got != nil {
		t.Fatalf("expected no visible errors before touch, got %v", got)
	}
	if diff := cmp.Diff(state.Values{"email": nil, "password": nil}, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsInvalidSchema(t *testing.T) {
	_, err := form.New(model.Schema{{ID: "a", Kind: model.KindText}, {ID: "a", Kind: model.KindText}})
	if !errors.Is(err, form.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestSetFieldRecomputesAndShowsTouchedErrors(t *testing.T) {
	f := mustForm(t, loginSchema())

	if err := f.SetField("email", "user@@example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if diff := cmp.Diff([]string{"Enter a valid email"}, f.VisibleErrors("email")); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
	if f.VisibleErrors("password") != nil {
		t.Fatalf("untouched password should not show errors")
	}

	if err := f.SetField("email", "user@example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if got := f.VisibleErrors("email"); len(got) != 0 {
		t.Fatalf("expected stale email error to be gone, got %v", got)
	}

	if err := f.SetField("password", "secret"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if !f.Valid() {
		t.Fatalf("expected valid form, errors %v", f.Errors())
	}
}

func TestSetFieldUnknown(t *testing.T) {
	f := mustForm(t, loginSchema())
	if err := f.SetField("nope", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestOptionalFieldActivation(t *testing.T) {
	f := mustForm(t, productSchema())

	if f.Active("rent_price") {
		t.Fatalf("optional field should start inactive")
	}
	if f.Errors().Has("rent_price") {
		t.Fatalf("inactive optional field must not be validated")
	}
	if err := f.SetField("rent_price", 10.0); !errors.Is(err, form.ErrFieldInactive) {
		t.Fatalf("expected ErrFieldInactive, got %v", err)
	}

	if err := f.SetActive("rent_price", true); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if diff := cmp.Diff([]string{"Enter a rent price"}, f.Errors().For("rent_price")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if err := f.SetField("rent_price", 12.5); err != nil {
		t.Fatalf("set rent: %v", err)
	}
	if f.Errors().Has("rent_price") {
		t.Fatalf("expected rent price to validate")
	}

	if err := f.SetActive("rent_price", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if f.Value("rent_price") != nil {
		t.Fatalf("deactivated field kept value %v", f.Value("rent_price"))
	}
	if f.Touched("rent_price") {
		t.Fatalf("deactivated field kept touched flag")
	}
	if f.Errors().Has("rent_price") {
		t.Fatalf("deactivated field still has errors")
	}
}

func TestSetActiveRequiresOptional(t *testing.T) {
	f := mustForm(t, productSchema())
	if err := f.SetActive("product_name", true); !errors.Is(err, form.ErrNotOptional) {
		t.Fatalf("expected ErrNotOptional, got %v", err)
	}
}

func TestFileSelectionByIdentity(t *testing.T) {
	f := mustForm(t, productSchema())
	front := model.FileHandle{Name: "front.png", Size: 10}
	back := model.FileHandle{Name: "back.png", Size: 20}
	twin := model.FileHandle{Name: "front.png", Size: 11}

	if err := f.AddFiles("img_upload", front, back, front, twin); err != nil {
		t.Fatalf("add files: %v", err)
	}
	if diff := cmp.Diff([]model.FileHandle{front, back, twin}, f.Values().Files("img_upload")); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if f.Errors().Has("img_upload") {
		t.Fatalf("non-empty selection should satisfy required")
	}

	if err := f.RemoveFile("img_upload", model.FileHandle{Name: "front.png", Size: 10}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff([]model.FileHandle{back, twin}, f.Values().Files("img_upload")); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}

	if err := f.RemoveFile("img_upload", back); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := f.RemoveFile("img_upload", twin); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff([]string{"Upload at least one image"}, f.VisibleErrors("img_upload")); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}

	if err := f.AddFiles("product_name", front); !errors.Is(err, form.ErrNotFileField) {
		t.Fatalf("expected ErrNotFileField, got %v", err)
	}
}

func TestValueReturnsCopy(t *testing.T) {
	f := mustForm(t, productSchema())
	front := model.FileHandle{Name: "front.png", Size: 10}
	if err := f.AddFiles("img_upload", front); err != nil {
		t.Fatalf("add files: %v", err)
	}

	files, ok := f.Value("img_upload").([]model.FileHandle)
	if !ok || len(files) != 1 {
		t.Fatalf("unexpected value %#v", f.Value("img_upload"))
	}
	files[0].Name = "mutated"

	if diff := cmp.Diff([]model.FileHandle{front}, f.Values().Files("img_upload")); diff != "" {
		t.Fatalf("state changed through Value (-want +got):\n%s", diff)
	}
	if got := f.Value("missing"); got != nil {
		t.Fatalf("expected nil for unknown id, got %v", got)
	}
}

func TestReplaceSchemaRederivesState(t *testing.T) {
	f := mustForm(t, productSchema())
	_ = f.SetField("product_name", "Drill")
	_ = f.SetActive("rent_price", true)
	_ = f.SetField("rent_price", 5.0)

	next := productSchema()[:2]
	next = append(next, model.FieldDescriptor{ID: "rent_price", Kind: model.KindNumber, OptionalToggle: true})
	next = append(next, model.FieldDescriptor{ID: "notes", Kind: model.KindTextarea})

	if err := f.ReplaceSchema(next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := state.Values{"product_name": "Drill", "category": nil, "rent_price": nil, "notes": nil}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if f.Active("rent_price") {
		t.Fatalf("activation should reset on schema change")
	}
	if !f.Touched("product_name") {
		t.Fatalf("surviving field should keep its touched flag")
	}
	if f.Errors().Has("img_upload") {
		t.Fatalf("dropped field must not keep errors")
	}
}

func TestLoadOptions(t *testing.T) {
	f := mustForm(t, productSchema())
	_ = f.SetField("product_name", "Drill")

	src := options.Static("Tools", "Garden")
	if err := f.LoadOptions(context.Background(), "category", src); err != nil {
		t.Fatalf("load options: %v", err)
	}
	field, _ := f.Field("category")
	if diff := cmp.Diff([]string{"Tools", "Garden"}, field.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if f.Value("product_name") != "Drill" {
		t.Fatalf("option refresh must keep values")
	}

	failing := options.SourceFunc(func(context.Context) ([]string, error) {
		return nil, errors.New("boom")
	})
	if err := f.LoadOptions(context.Background(), "category", failing); err == nil {
		t.Fatalf("expected fetch error")
	}
	if err := f.SetOptions("product_name", []string{"x"}); !errors.Is(err, model.ErrNotSelect) {
		t.Fatalf("expected ErrNotSelect, got %v", err)
	}
	if err := f.SetOptions("missing", []string{"x"}); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSubmitRejectsInvalid(t *testing.T) {
	rec := &recorder{}
	f := mustForm(t, loginSchema(), form.WithSubmitter(rec))

	err := f.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(rec.snapshots) != 0 {
		t.Fatalf("invalid form reached submitter")
	}
}

func TestSubmitSnapshotsIncludedFieldsAndResets(t *testing.T) {
	rec := &recorder{}
	f := mustForm(t, productSchema(), form.WithName("newProduct"), form.WithSubmitter(rec))
	photo := model.FileHandle{Name: "front.png", Size: 10}

	_ = f.SetField("product_name", "Drill")
	_ = f.SetField("category", "Tools")
	_ = f.AddFiles("img_upload", photo)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []submit.Snapshot{{
		Form: "newProduct",
		Values: state.Values{
			"product_name": "Drill",
			"category":     "Tools",
			"img_upload":   []model.FileHandle{photo},
		},
	}}
	if diff := cmp.Diff(want, rec.snapshots); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if f.Value("product_name") != nil || f.Touched("product_name") {
		t.Fatalf("form should reset after a successful submit")
	}
}

func TestSubmitFailureKeepsState(t *testing.T) {
	rec := &recorder{err: errors.New("offline")}
	f := mustForm(t, loginSchema(), form.WithSubmitter(rec))
	_ = f.SetField("email", "user@example.com")
	_ = f.SetField("password", "secret")

	err := f.Submit(context.Background())
	if err == nil || !errors.Is(err, rec.err) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if f.Value("email") != "user@example.com" {
		t.Fatalf("failed submit must keep values")
	}
}

func TestSubmitWithoutSubmitter(t *testing.T) {
	f := mustForm(t, loginSchema())
	_ = f.SetField("email", "user@example.com")
	_ = f.SetField("password", "secret")

	if err := f.Submit(context.Background()); !errors.Is(err, submit.ErrNoSubmitter) {
		t.Fatalf("expected ErrNoSubmitter, got %v", err)
	}
}

func TestPrefillAndReset(t *testing.T) {
	f := mustForm(t, loginSchema(), form.WithValues(map[string]any{
		"email":   "user@example.com",
		"unknown": "ignored",
	}))

	if f.Value("email") != "user@example.com" {
		t.Fatalf("prefill not applied")
	}
	if _, ok := f.Values()["unknown"]; ok {
		t.Fatalf("unknown prefill id leaked into state")
	}

	_ = f.SetField("email", "other@example.com")
	f.Reset()
	if f.Value("email") != "user@example.com" || f.Touched("email") {
		t.Fatalf("reset should restore prefill and clear touched")
	}
}
