package services

import (
	"mime/multipart"
)

// MockImageStorage is a test double for ImageStorage.
type MockImageStorage struct {
	SaveFunc func(fileHeader *multipart.FileHeader) (string, error)
	Saved    []string
}

// Save records the filename and delegates to SaveFunc when set.
func (m *MockImageStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	m.Saved = append(m.Saved, fileHeader.Filename)
	if m.SaveFunc != nil {
		return m.SaveFunc(fileHeader)
	}
	return "/api/uploads/" + fileHeader.Filename, nil
}
