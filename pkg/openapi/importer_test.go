package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
)

const storefrontAPI = `
openapi: 3.0.3
info:
  title: Storefront
  version: "1.0"
paths:
  /auth/signup:
    post:
      operationId: signup
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email, firstname]
              properties:
                firstname:
                  type: string
                  x-formstate-order: 1
                  x-formstate-required-message: Must be at least 2 characters
                email:
                  type: string
                  format: email
                  example: user@mail.com
                  x-formstate-order: 2
                birth_date:
                  type: string
                  format: date
                  x-formstate-order: 3
                password:
                  type: string
                  format: password
                  x-formstate-order: 4
                confirmPassword:
                  type: string
                  format: password
                  title: Confirm password
                  x-formstate-order: 5
  /products:
    post:
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              required: [category, img_upload]
              properties:
                category:
                  type: string
                  enum: [Tools, Garden]
                rent_price:
                  type: number
                  minimum: 1
                  x-formstate-optional: true
                description:
                  type: string
                  x-formstate-kind: textarea
                  x-formstate-label: About the product
                img_upload:
                  type: array
                  items:
                    type: string
                    format: binary
    get:
      operationId: listProducts
  /broken:
    put:
      operationId: broken
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                flag:
                  type: boolean
`

func loadDoc(t *testing.T) *openapi.Document {
	t.Helper()
	doc, err := openapi.New().Load(context.Background(), []byte(storefrontAPI))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestOperations(t *testing.T) {
	doc := loadDoc(t)
	if diff := cmp.Diff([]string{"broken", "post:/products", "signup"}, doc.Operations()); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestSignupSchema(t *testing.T) {
	schema, err := loadDoc(t).Schema("signup")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	want := model.Schema{
		model.FieldDescriptor{ID: "firstname", Kind: model.KindText, Label: "Firstname"}.WithRequired("Must be at least 2 characters"),
		model.FieldDescriptor{ID: "email", Kind: model.KindEmail, Label: "Email", Placeholder: "user@mail.com"}.WithRequired("Email is required"),
		{ID: "birth_date", Kind: model.KindDate, Label: "Birth date"},
		{ID: "password", Kind: model.KindPassword, Label: "Password"},
		{ID: "confirmPassword", Kind: model.KindPassword, Label: "Confirm password"},
	}
	if diff := cmp.Diff(want, schema); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestProductSchema(t *testing.T) {
	imp := openapi.New(openapi.WithRequiredMessage(func(label string) string {
		return "Missing " + label
	}))
	doc, err := imp.Load(context.Background(), []byte(storefrontAPI))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	schema, err := doc.Schema("post:/products")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	want := model.Schema{
		model.FieldDescriptor{ID: "category", Kind: model.KindSelect, Label: "Category", Options: []string{"Tools", "Garden"}}.WithRequired("Missing Category"),
		{ID: "description", Kind: model.KindTextarea, Label: "About the product"},
		model.FieldDescriptor{ID: "img_upload", Kind: model.KindFile, Label: "Img upload"}.WithRequired("Missing Img upload"),
		{ID: "rent_price", Kind: model.KindNumber, Label: "Rent price", Min: model.NumberBound(1), OptionalToggle: true},
	}
	if diff := cmp.Diff(want, schema); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaErrors(t *testing.T) {
	doc := loadDoc(t)
	if _, err := doc.Schema("missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := doc.Schema("listProducts"); !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := doc.Schema("broken"); !errors.Is(err, openapi.ErrUnsupportedProperty) {
		t.Fatalf("expected ErrUnsupportedProperty, got %v", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := openapi.New().Load(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
	if _, err := openapi.New().Load(context.Background(), []byte("{not yaml")); err == nil {
		t.Fatalf("expected parse error")
	}
}
