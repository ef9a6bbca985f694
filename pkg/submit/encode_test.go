package submit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/submit"
)

func productSnapshot() submit.Snapshot {
	return submit.Snapshot{
		Form: "newProduct",
		Values: state.Values{
			"product_name": "Keyboard Pro",
			"rent_price":   150.5,
			"available":    true,
			"published":    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			"notes":        nil,
			"img_upload": []model.FileHandle{
				{Name: "front.png", Size: 5},
				{Name: "back.png", Size: 4},
			},
		},
	}
}

func memoryOpener(contents map[string]string) submit.FileOpener {
	return func(file model.FileHandle) (io.ReadCloser, error) {
		body, ok := contents[file.Name]
		if !ok {
			return nil, errors.New("missing")
		}
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func TestEncodeForm(t *testing.T) {
	encoded := submit.EncodeForm(productSnapshot())
	parsed, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := url.Values{
		"product_name": {"Keyboard Pro"},
		"rent_price":   {"150.5"},
		"available":    {"true"},
		"published":    {"2024-03-01T12:00:00Z"},
		"img_upload":   {"front.png", "back.png"},
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("form payload mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSON(t *testing.T) {
	raw, err := submit.EncodeJSON(productSnapshot())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["product_name"] != "Keyboard Pro" || decoded["notes"] != nil {
		t.Fatalf("unexpected payload: %s", raw)
	}
	files, ok := decoded["img_upload"].([]any)
	if !ok || len(files) != 2 {
		t.Fatalf("files not encoded: %s", raw)
	}
}

func TestEncodeMultipart(t *testing.T) {
	var buf bytes.Buffer
	contentType, err := submit.EncodeMultipart(&buf, productSnapshot(), memoryOpener(map[string]string{
		"front.png": "front",
		"back.png":  "back",
	}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type %q: %v", contentType, err)
	}

	reader := multipart.NewReader(&buf, params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	defer form.RemoveAll()

	wantValues := map[string][]string{
		"product_name": {"Keyboard Pro"},
		"rent_price":   {"150.5"},
		"available":    {"true"},
		"published":    {"2024-03-01T12:00:00Z"},
	}
	if diff := cmp.Diff(wantValues, form.Value); diff != "" {
		t.Fatalf("multipart values mismatch (-want +got):\n%s", diff)
	}

	files := form.File["img_upload"]
	if len(files) != 2 {
		t.Fatalf("expected 2 file parts, got %d", len(files))
	}
	var names []string
	for _, header := range files {
		names = append(names, header.Filename)
	}
	if diff := cmp.Diff([]string{"front.png", "back.png"}, names); diff != "" {
		t.Fatalf("file order mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeMultipartOpenError(t *testing.T) {
	var buf bytes.Buffer
	_, err := submit.EncodeMultipart(&buf, productSnapshot(), memoryOpener(nil))
	if err == nil || !strings.Contains(err.Error(), "open") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestSubmitterFunc(t *testing.T) {
	var got submit.Snapshot
	var s submit.Submitter = submit.SubmitterFunc(func(_ context.Context, snapshot submit.Snapshot) error {
		got = snapshot
		return nil
	})
	if err := s.Submit(context.Background(), productSnapshot()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Form != "newProduct" {
		t.Fatalf("snapshot not forwarded: %#v", got)
	}
}
