// Package upload validates incoming résumé files and drives them through the store.
package upload

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// PDFMimeType is the only accepted media type
	PDFMimeType = "application/pdf"
	// MaxFileSize is the default upload limit in bytes
	MaxFileSize int64 = 10 * 1024 * 1024
)

// Messages shown for rejected uploads
const (
	MsgNotPDF   = "Please upload a PDF file only."
	MsgTooLarge = "File size must be less than 10MB."
	MsgBadSize  = "File size is invalid."
)

var validate = validator.New()

// Validate checks file against the upload contract. The media type is checked
// before the size. maxSize <= 0 means MaxFileSize.
func Validate(file types.UploadFile, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}

	if err := validate.Var(file.MimeType, "required,eq="+PDFMimeType); err != nil {
		return &types.ErrValidation{Field: "type", Message: MsgNotPDF}
	}
	if err := validate.Var(file.Size, "min=0"); err != nil {
		return &types.ErrValidation{Field: "size", Message: MsgBadSize}
	}
	if err := validate.Var(file.Size, fmt.Sprintf("lte=%d", maxSize)); err != nil {
		return &types.ErrValidation{Field: "size", Message: TooLargeMessage(maxSize)}
	}
	if err := validate.Struct(file); err != nil {
		return &types.ErrValidation{Field: "name", Message: "File name is required."}
	}
	return nil
}

// TooLargeMessage is the rejection message for files over maxSize
func TooLargeMessage(maxSize int64) string {
	if maxSize == MaxFileSize {
		return MsgTooLarge
	}
	return fmt.Sprintf("File size must be at most %d bytes.", maxSize)
}
