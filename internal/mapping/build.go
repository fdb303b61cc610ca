// Package mapping builds the unified identifier -> record lookup from the
// two identity sources: the generated per-employer lookup table (primary)
// and the uploaded master report (fallback).
package mapping

import (
	"context"
	"strings"

	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/identity"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/tabular"
)

// Build merges the primary and fallback sources into one mapping.
//
// Primary rows are upserted first; when the primary source itself repeats
// an identifier, the last row wins. Fallback rows are then applied: a new
// identifier is inserted whole, an existing one only has its empty fields
// filled in. A primary value is never overwritten by the fallback.
//
// Rows whose identifier normalizes to empty are skipped. A missing
// identifier column in either source fails before any row is processed.
func Build(ctx context.Context, primary, fallback *tabular.Table, ps, fs schema.SourceSchema) (*identity.Mapping, error) {
	logger := ctxlog.FromContext(ctx)

	if err := primary.RequireColumns(ps.Role, ps.Identifier); err != nil {
		return nil, err
	}
	if err := fallback.RequireColumns(fs.Role, fs.Identifier); err != nil {
		return nil, err
	}

	m := identity.NewMapping()

	for _, row := range primary.Rows {
		id := identity.NormalizeID(row.Get(ps.Identifier))
		if id == "" {
			continue
		}
		m.Put(&identity.Record{
			Identifier:    id,
			AccountNumber: field(row, ps.Account),
			Surname:       field(row, ps.Surname),
			FirstName:     field(row, ps.FirstName),
			OtherNames:    field(row, ps.OtherNames),
			Provenance:    identity.SourceLookup,
		})
	}
	primaryCount := m.Len()

	for _, row := range fallback.Rows {
		id := identity.NormalizeID(row.Get(fs.Identifier))
		if id == "" {
			continue
		}

		rec, exists := m.Get(id)
		if !exists {
			m.Put(&identity.Record{
				Identifier:    id,
				AccountNumber: field(row, fs.Account),
				Surname:       field(row, fs.Surname),
				FirstName:     field(row, fs.FirstName),
				OtherNames:    field(row, fs.OtherNames),
				Provenance:    identity.SourceMaster,
			})
			continue
		}

		fill(&rec.AccountNumber, field(row, fs.Account))
		fill(&rec.Surname, field(row, fs.Surname))
		fill(&rec.FirstName, field(row, fs.FirstName))
		fill(&rec.OtherNames, field(row, fs.OtherNames))
	}

	logger.Debug("Mapping built.",
		"total", m.Len(),
		"from_primary", primaryCount,
		"from_fallback", m.Len()-primaryCount,
	)
	return m, nil
}

// field reads a trimmed cell value, treating an unconfigured column name as
// an absent field.
func field(row tabular.Row, column string) string {
	if column == "" {
		return ""
	}
	return strings.TrimSpace(row.Get(column))
}

// fill sets dst from src only when dst is currently empty.
func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
