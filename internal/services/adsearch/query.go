package adsearch

import (
	"github.com/adarchive/adlib-gateway/internal/entities/adquery"
	"github.com/adarchive/adlib-gateway/pkg/archive"
)

// Mode selects the fold applied to the batch stream.
type Mode int

const (
	ModeList Mode = iota
	ModeCount
	ModeTrending
)

const (
	defaultPageLimit  = 500
	defaultRetryLimit = 3
)

// BuildQuery normalizes the validated request into an immutable archive
// query, applying defaults for every optional parameter. Trending mode
// ensures the delivery start field is part of the outbound field list; the
// prepend is skipped when the caller already requested it, so the field is
// never sent twice.
func BuildQuery(req *adquery.SearchRequest, v *Validated, mode Mode) archive.Query {
	term := archive.MatchAnyTerm
	if req.SearchTerm != nil {
		term = *req.SearchTerm
	}

	status := req.AdActiveStatus
	if status == "" {
		status = archive.StatusAll
	}

	after := req.AfterDate
	if after == "" {
		after = archive.EpochDate
	}

	limit := defaultPageLimit
	if req.BatchSize != nil {
		limit = *req.BatchSize
	}

	retry := defaultRetryLimit
	if req.RetryLimit != nil {
		retry = *req.RetryLimit
	}

	fields := make([]string, len(v.Fields))
	copy(fields, v.Fields)
	if mode == ModeTrending && !containsField(fields, archive.StartTimeField) {
		fields = append([]string{archive.StartTimeField}, fields...)
	}

	var pageIDs []string
	if req.SearchPageIDs != nil {
		pageIDs = splitTokens(*req.SearchPageIDs)
	}

	return archive.Query{
		AccessToken:   *req.AccessToken,
		Fields:        fields,
		SearchTerm:    term,
		Countries:     v.Codes,
		SearchPageIDs: pageIDs,
		ActiveStatus:  status,
		AfterDate:     after,
		PageLimit:     limit,
		RetryLimit:    retry,
	}
}

func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
