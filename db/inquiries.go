// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/domain-landing/models"
)

// InquiryRepo stores contact form submissions.
type InquiryRepo struct {
	db *sqlx.DB
}

func NewInquiryRepo(db *sqlx.DB) *InquiryRepo {
	return &InquiryRepo{db: db}
}

// Insert saves inq, assigning an ID when it has none. It returns the ID.
func (r *InquiryRepo) Insert(ctx context.Context, inq models.Inquiry) (string, error) {
	if inq.ID == "" {
		inq.ID = uuid.NewString()
	}
	inq.SubmittedAt = inq.SubmittedAt.UTC()

	query := r.db.Rebind(`
		INSERT INTO inquiry (id, first_name, last_name, email, phone, company,
			inquiry_type, offer_amount, message, domain, source, fields, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		inq.ID, inq.FirstName, inq.LastName, inq.Email, inq.Phone, inq.Company,
		inq.InquiryType, inq.OfferAmount, inq.Message, inq.Domain, inq.Source, inq.Fields, inq.SubmittedAt,
	)
	if err != nil {
		return "", fmt.Errorf("inserting inquiry: %w", err)
	}
	return inq.ID, nil
}

// List returns inquiries newest first.
func (r *InquiryRepo) List(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.Rebind(`
		SELECT id, first_name, last_name, email, phone, company, inquiry_type,
			offer_amount, message, domain, source, fields, submitted_at
		FROM inquiry
		ORDER BY submitted_at DESC, id
		LIMIT ? OFFSET ?`)

	inquiries := []models.Inquiry{}
	if err := r.db.SelectContext(ctx, &inquiries, query, limit, offset); err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	return inquiries, nil
}

// Count is the total number of stored inquiries.
func (r *InquiryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM inquiry"); err != nil {
		return 0, fmt.Errorf("counting inquiries: %w", err)
	}
	return n, nil
}
