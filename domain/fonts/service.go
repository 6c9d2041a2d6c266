package fonts

import (
	"context"
	"mime"
	"mime/multipart"

	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/constants"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/gabriel-vasile/mimetype"
)

const pdfMimeType = "application/pdf"

const (
	msgNoFile      = "No file provided"
	msgInvalidType = "Invalid file type. Please upload a PDF file."
	msgTooLarge    = "File too large. Maximum size is 10MB."
	msgFailed      = "Failed to process font generation"
)

type FontService interface {
	// Receive validates an uploaded handwriting sample. Nothing is generated
	// yet; the response only echoes the file metadata.
	Receive(ctx context.Context, file *multipart.FileHeader) (*GenerateFontResponse, error)
}

type fontService struct {
	logger   *log.Logger
	maxBytes int64
}

func NewFontService(logger *log.Logger) FontService {
	return &fontService{logger: logger, maxBytes: constants.MaxPDFUploadBytes}
}

func (s *fontService) Receive(ctx context.Context, file *multipart.FileHeader) (*GenerateFontResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if file == nil {
		return nil, apperrors.NewInvalidRequestError(msgNoFile, nil)
	}

	if !declaredPDF(file.Header.Get("Content-Type")) {
		logger.Warn("Rejected upload with non-PDF content type", "content_type", file.Header.Get("Content-Type"))
		return nil, apperrors.NewUnsupportedMediaError(msgInvalidType, nil)
	}

	if file.Size > s.maxBytes {
		logger.Warn("Rejected oversized upload", "size", file.Size, "max", s.maxBytes)
		return nil, apperrors.NewPayloadTooLargeError(msgTooLarge, nil)
	}

	f, err := file.Open()
	if err != nil {
		logger.Error("Failed to open upload", "error", err)
		return nil, apperrors.NewInternalServerError(msgFailed, err)
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		logger.Error("Failed to sniff upload", "error", err)
		return nil, apperrors.NewInternalServerError(msgFailed, err)
	}
	if !detected.Is(pdfMimeType) {
		logger.Warn("Rejected upload whose content is not PDF", "detected", detected.String())
		return nil, apperrors.NewUnsupportedMediaError(msgInvalidType, nil)
	}

	logger.Info("Handwriting sample received", "file_name", file.Filename, "size", file.Size)

	return &GenerateFontResponse{
		FileName: file.Filename,
		FileSize: file.Size,
	}, nil
}

func declaredPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == pdfMimeType
}
