package html_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

func productForm(t *testing.T) *form.Form {
	t.Helper()
	f, err := form.New(model.Schema{
		model.FieldDescriptor{ID: "product_name", Kind: model.KindText, Label: "Name <script>alert(1)</script>", Placeholder: "Drill"}.WithRequired("Name is required"),
		{ID: "category", Kind: model.KindSelect, Label: "category", Options: []string{"Tools", "Garden"}},
		{ID: "rent_price", Kind: model.KindNumber, Label: "Rent", OptionalToggle: true, Min: model.NumberBound(1)},
		{ID: "notes", Kind: model.KindTextarea, Label: "Notes"},
		{ID: "img_upload", Kind: model.KindFile, Label: "Images", UploadLabel: "Drop <strong>images</strong>"},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func renderString(t *testing.T, r *html.Renderer, view render.View, opts render.Options) string {
	t.Helper()
	out, err := r.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Errorf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Errorf("expected output not to contain %q\n%s", fragment, out)
		}
	}
}

func TestRenderFreshForm(t *testing.T) {
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out := renderString(t, r, productForm(t), render.Options{
		Title:  "New product",
		Action: "/products",
		Hidden: []render.HiddenField{render.CSRFToken("_csrf", "tok")},
	})

	assertContains(t, out,
		`action="/products"`,
		`method="post"`,
		`enctype="multipart/form-data"`,
		`<h2 class="fs-title">New product</h2>`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`name="product_name"`,
		`placeholder="Drill"`,
		`>Select a category</option>`,
		`<option value="Garden">Garden</option>`,
		`name="rent_price__active"`,
		`min="1"`,
		`<textarea id="notes" name="notes">`,
		`type="file"`,
		`Drop <strong>images</strong>`,
		`<button type="submit" disabled>Submit</button>`,
	)
	assertNotContains(t, out, "<script", "alert(1)", "Name is required", "fs-invalid")
}

func TestRenderTouchedErrorsAndValues(t *testing.T) {
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := productForm(t)
	_ = f.SetField("product_name", "")
	_ = f.SetField("notes", "<b>used</b>")
	_ = f.SetField("category", "Garden")

	out := renderString(t, r, f, render.Options{})
	assertContains(t, out,
		`fs-invalid`,
		`<li>Name is required</li>`,
		`&lt;b&gt;used&lt;/b&gt;`,
		`<option value="Garden" selected>Garden</option>`,
	)

	_ = f.SetField("product_name", "Drill")
	_ = f.SetActive("rent_price", true)
	_ = f.AddFiles("img_upload", model.FileHandle{Name: "front.png", Size: 12})
	out = renderString(t, r, f, render.Options{SubmitLabel: "Publish"})
	assertContains(t, out,
		`value="Drill"`,
		`checked`,
		`<li data-size="12">front.png</li>`,
		`<button type="submit">Publish</button>`,
	)
	assertNotContains(t, out, "Name is required")
}

func TestRenderCustomTemplate(t *testing.T) {
	files := fstest.MapFS{
		"custom.tpl": {Data: []byte(`{% for f in fields %}[{{ f.ID }}:{{ f.Control }}]{% endfor %}`)},
	}
	r, err := html.New(html.WithTemplatesFS(files), html.WithEntryTemplate("custom.tpl"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out := renderString(t, r, productForm(t), render.Options{})
	want := "[product_name:text][category:dropdown][rent_price:text][notes:textarea][img_upload:fileUpload]"
	if out != want {
		t.Fatalf("custom template mismatch\nwant: %s\n got: %s", want, out)
	}
}

func TestNewMissingTemplate(t *testing.T) {
	if _, err := html.New(html.WithTemplatesFS(fstest.MapFS{}), html.WithEntryTemplate("nope.tpl")); err == nil {
		t.Fatalf("expected missing template error")
	}
}
