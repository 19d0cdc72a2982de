package api

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// KYCService covers identity-document submission and status.
type KYCService struct {
	httpc *httpclient.Client
}

// KYCStatus is the review state of a submitted document.
type KYCStatus struct {
	ID             int64  `json:"id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Status         string `json:"status"`
	SubmittedAt    string `json:"submitted_at"`
	ReviewedAt     string `json:"reviewed_at,omitempty"`
}

// Upload submits an identity document for review. The document itself goes as
// a multipart file part alongside its type and number.
func (s *KYCService) Upload(ctx context.Context, documentType, documentNumber, filename string, document io.Reader) (*KYCStatus, error) {
	fields := map[string]string{
		"document_type":   documentType,
		"document_number": documentNumber,
	}

	var out KYCStatus
	if err := s.httpc.PostMultipart(ctx, "/kyc/upload", fields, "document", filename, document, &out); err != nil {
		return nil, errors.Wrap(err, "[KYCService.Upload]")
	}
	return &out, nil
}

// Status returns the user's latest KYC submission state.
func (s *KYCService) Status(ctx context.Context) (*KYCStatus, error) {
	var out KYCStatus
	if err := s.httpc.Get(ctx, "/kyc/status", &out); err != nil {
		return nil, errors.Wrap(err, "[KYCService.Status]")
	}
	return &out, nil
}
