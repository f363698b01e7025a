package onboarding

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/society/backend/internal/domain/onboarding"
)

// ReadDraft decodes a draft from r. Missing fields keep their defaults.
func ReadDraft(r io.Reader) (*onboarding.MemberDraft, error) {
	d := onboarding.NewMemberDraft()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

// WriteDraft encodes d to w as indented JSON
func WriteDraft(w io.Writer, d *onboarding.MemberDraft) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return nil
}

// LoadDraftFile reads a draft from the JSON file at path
func LoadDraftFile(path string) (*onboarding.MemberDraft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open draft: %w", err)
	}
	defer f.Close()
	return ReadDraft(f)
}

// SaveDraft writes the wizard's current draft to w
func (w *Wizard) SaveDraft(out io.Writer) error {
	return WriteDraft(out, w.Draft())
}
