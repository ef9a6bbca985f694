package submit

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
)

// FileOpener resolves a file handle into its content.
type FileOpener func(file model.FileHandle) (io.ReadCloser, error)

// OpenFromDisk opens the handle's Path.
func OpenFromDisk(file model.FileHandle) (io.ReadCloser, error) {
	if file.Path == "" {
		return nil, fmt.Errorf("submit: file %q has no path", file.Name)
	}
	return os.Open(file.Path)
}

// EncodeJSON serialises the snapshot values as a JSON object.
func EncodeJSON(snapshot Snapshot) ([]byte, error) {
	values := make(map[string]any, len(snapshot.Values))
	for key, value := range snapshot.Values {
		values[key] = value
	}
	return json.Marshal(values)
}

// EncodeForm serialises the snapshot as application/x-www-form-urlencoded.
// Absent values are skipped; file selections contribute their names.
func EncodeForm(snapshot Snapshot) string {
	out := url.Values{}
	for _, key := range snapshot.Keys() {
		value := snapshot.Values[key]
		if files, ok := value.([]model.FileHandle); ok {
			for _, file := range files {
				out.Add(key, file.Name)
			}
			continue
		}
		if text, ok := scalarString(value); ok {
			out.Set(key, text)
		}
	}
	return out.Encode()
}

// EncodeMultipart writes the snapshot as multipart/form-data and returns the
// content type (with boundary). Every file of a selection becomes its own
// part under the field id; dates are written in RFC 3339 and absent values
// are skipped. A nil opener reads files from disk.
func EncodeMultipart(w io.Writer, snapshot Snapshot, open FileOpener) (string, error) {
	if open == nil {
		open = OpenFromDisk
	}
	mw := multipart.NewWriter(w)

	for _, key := range snapshot.Keys() {
		value := snapshot.Values[key]
		if files, ok := value.([]model.FileHandle); ok {
			for _, file := range files {
				if err := writeFilePart(mw, key, file, open); err != nil {
					return "", err
				}
			}
			continue
		}
		text, ok := scalarString(value)
		if !ok {
			continue
		}
		if err := mw.WriteField(key, text); err != nil {
			return "", fmt.Errorf("submit: write field %s: %w", key, err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("submit: close multipart writer: %w", err)
	}
	return mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, key string, file model.FileHandle, open FileOpener) error {
	reader, err := open(file)
	if err != nil {
		return fmt.Errorf("submit: open %s: %w", file.Name, err)
	}
	defer reader.Close()

	part, err := mw.CreateFormFile(key, file.Name)
	if err != nil {
		return fmt.Errorf("submit: create part for %s: %w", file.Name, err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return fmt.Errorf("submit: copy %s: %w", file.Name, err)
	}
	return nil
}

func scalarString(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case time.Time:
		if typed.IsZero() {
			return "", false
		}
		return typed.UTC().Format(time.RFC3339), true
	default:
		return fmt.Sprint(typed), true
	}
}
