// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submitters

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/models"
)

// InquiryInserter is the part of db.InquiryRepo the store needs.
type InquiryInserter interface {
	Insert(ctx context.Context, inq models.Inquiry) (string, error)
}

// Store saves inquiries as plain text.
type Store struct {
	repo   InquiryInserter
	policy *bluemonday.Policy
}

func NewStore(repo InquiryInserter) *Store {
	return &Store{repo: repo, policy: bluemonday.StrictPolicy()}
}

func (s *Store) Submit(ctx context.Context, p form.Payload) (form.Response, error) {
	inq := models.Inquiry{
		FirstName:   s.clean(p.Value(form.FieldFirstName)),
		LastName:    s.clean(p.Value(form.FieldLastName)),
		Email:       strings.TrimSpace(p.Value(form.FieldEmail)),
		Phone:       s.clean(p.Value(form.FieldPhone)),
		Company:     s.clean(p.Value(form.FieldCompany)),
		InquiryType: p.InquiryType(),
		OfferAmount: s.clean(p.Value(form.FieldOfferAmount)),
		Message:     s.clean(p.Value(form.FieldMessage)),
		Domain:      p.Domain,
		Source:      p.Source,
		Fields:      make(models.FieldMap, len(p.Fields)),
		SubmittedAt: p.Timestamp,
	}
	for k, v := range p.Fields {
		if k == form.FieldEmail {
			inq.Fields[k] = inq.Email
			continue
		}
		inq.Fields[k] = s.clean(v)
	}

	id, err := s.repo.Insert(ctx, inq)
	if err != nil {
		return form.Response{}, err
	}

	slog.InfoContext(ctx, "inquiry stored", "id", id, "inquiry_type", inq.InquiryType)
	return form.Response{Success: true, Message: id}, nil
}

// clean strips markup and leaves readable text.
func (s *Store) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}
