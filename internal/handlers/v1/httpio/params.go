package httpio

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/logging"
)

// UserHeader is the header carrying the authenticated user. It is set by the
// authentication layer in front of this service.
const UserHeader = "X-User-ID"

const dateLayout = "2006-01-02"

func ParseUserID(s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "missing or invalid "+UserHeader+" header")
	}
	return id, nil
}

func ParseUUID(field, s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// ParsePath parses the user header and the id path parameter of an
// /{resource}/{id} route.
func ParsePath(userHeader, field, id string) (uuid.UUID, uuid.UUID, error) {
	userID, err := ParseUserID(userHeader)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	resourceID, err := ParseUUID(field, id)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, resourceID, nil
}

// ParseNullUUID treats an empty string as no reference.
func ParseNullUUID(field, s string) (uuid.NullUUID, error) {
	if s == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := ParseUUID(field, s)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func ParseAmount(field, s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
// An empty string yields the zero time.
func ParseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

// Timer starts a named timing on the request's LogData. The returned func
// stops it and is safe to call when the request carries no LogData.
func Timer(ctx context.Context, name string) func() {
	logData := logging.GetLogData(ctx)
	if logData == nil {
		return func() {}
	}
	return logData.AddTiming(name)
}

// AddLogData records a field on the request's LogData, if there is one.
func AddLogData(ctx context.Context, key string, value interface{}) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData(key, value)
	}
}
