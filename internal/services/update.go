package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	appErr "github.com/sentinelos/engine/pkg/errors"
)

var validate = validator.New()

// Update is a status update that passed validation, with surrounding
// whitespace removed and the source defaulted.
type Update struct {
	OrgID  string `validate:"required,max=128"`
	Text   string `validate:"required"`
	Source string `validate:"required,max=255"`
}

// NewUpdate normalizes and validates an incoming update. Every entry point
// calls it before anything is persisted or queued, so whitespace-only text
// is rejected the same way everywhere.
func NewUpdate(orgID, text, source string) (Update, error) {
	u := Update{
		OrgID:  strings.TrimSpace(orgID),
		Text:   strings.TrimSpace(text),
		Source: strings.TrimSpace(source),
	}
	if u.Source == "" {
		u.Source = DefaultSource
	}
	if u.Text == "" {
		return Update{}, appErr.Validation("empty text").WithMeta("org_id", u.OrgID)
	}
	if err := validate.Struct(u); err != nil {
		return Update{}, appErr.Wrap(err, appErr.CodeInvalid, "invalid update").WithMeta("org_id", u.OrgID)
	}
	return u, nil
}
