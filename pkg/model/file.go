package model

import "strconv"

// FileHandle is the in-memory reference to a selected file. The engine only
// inspects Name and Size; upload transport reads Path or ContentType.
type FileHandle struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
	Path        string `json:"path,omitempty"`
}

// Key returns the identity used when removing a file from a selection. Two
// handles with the same name and size are the same file.
func (f FileHandle) Key() string {
	return f.Name + "\x00" + strconv.FormatInt(f.Size, 10)
}

// SameFile reports whether f and other share the same identity.
func (f FileHandle) SameFile(other FileHandle) bool {
	return f.Name == other.Name && f.Size == other.Size
}
