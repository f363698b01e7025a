package storage

import (
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Document kinds accepted on the Documents step
const (
	DocumentKindIDProof       = "id_proof"
	DocumentKindAddressProof  = "address_proof"
	DocumentKindSaleDeed      = "sale_deed"
	DocumentKindShareCertCopy = "share_certificate"
	DocumentKindRentAgreement = "rent_agreement"
	DocumentKindPassportPhoto = "photo"
)

var documentKinds = map[string]struct{}{
	DocumentKindIDProof:       {},
	DocumentKindAddressProof:  {},
	DocumentKindSaleDeed:      {},
	DocumentKindShareCertCopy: {},
	DocumentKindRentAgreement: {},
	DocumentKindPassportPhoto: {},
}

var contentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
}

// Key validation errors
var (
	ErrUnknownDocumentKind    = errors.New("unknown document kind")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrInvalidFileName        = errors.New("invalid file name")
)

// IsDocumentKind reports whether kind is accepted
func IsDocumentKind(kind string) bool {
	_, ok := documentKinds[kind]
	return ok
}

// IsAllowedContentType reports whether contentType may be uploaded
func IsAllowedContentType(contentType string) bool {
	_, ok := contentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ok
}

// DocumentKey builds prefix/society/kind/<uuid>-<file>. The random segment
// keeps two uploads of the same file from colliding.
func DocumentKey(prefix, societyID, kind, fileName string) (string, error) {
	if !IsDocumentKind(kind) {
		return "", ErrUnknownDocumentKind
	}
	name := sanitizeFileName(fileName)
	if name == "" {
		return "", ErrInvalidFileName
	}
	society := sanitizeFileName(societyID)
	if society == "" {
		return "", ErrInvalidFileName
	}
	return path.Join(strings.Trim(prefix, "/"), society, kind, uuid.NewString()+"-"+name), nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
