package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATEs that say the server could not take the statement
const (
	pgQueryCanceled      = "57014" // statement_timeout fired
	pgAdminShutdown      = "57P01"
	pgCannotConnectNow   = "57P03"
	pgTooManyConnections = "53300"
	pgConnectionClass    = "08"
)

// ClickHouse server exception codes
const (
	chSocketTimeout       int32 = 209
	chNetworkError        int32 = 210
	chTimeoutExceeded     int32 = 159
	chTooSlow             int32 = 160
	chTooManySimultaneous int32 = 202
)

// Verdict is how an executor failure should be reported
type Verdict uint8

const (
	// VerdictFailed is a statement the executor ran and rejected
	VerdictFailed Verdict = iota
	// VerdictTimeout is a statement cut off by a server or client deadline
	VerdictTimeout
	// VerdictUnavailable is an executor that could not take the statement
	VerdictUnavailable
)

// Classify inspects a Postgres or ClickHouse failure
func Classify(err error) Verdict {
	if stderrs.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return VerdictTimeout
	}

	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgQueryCanceled:
			return VerdictTimeout
		case pgErr.Code == pgAdminShutdown, pgErr.Code == pgCannotConnectNow,
			pgErr.Code == pgTooManyConnections, strings.HasPrefix(pgErr.Code, pgConnectionClass):
			return VerdictUnavailable
		}
		return VerdictFailed
	}
	var connErr *pgconn.ConnectError
	if stderrs.As(err, &connErr) {
		return VerdictUnavailable
	}

	var chErr *clickhouse.Exception
	if stderrs.As(err, &chErr) {
		switch chErr.Code {
		case chTimeoutExceeded, chTooSlow:
			return VerdictTimeout
		case chTooManySimultaneous, chNetworkError, chSocketTimeout:
			return VerdictUnavailable
		}
	}
	return VerdictFailed
}

// FromExecutor wraps an executor failure with the code its verdict maps to.
// Timeouts and rejections surface as Query; an unreachable executor as Unavailable.
func FromExecutor(err error, what string) error {
	if err == nil {
		return nil
	}
	switch Classify(err) {
	case VerdictTimeout:
		return Wrap(err, ErrorCodeQuery, what+" timed out")
	case VerdictUnavailable:
		return Wrap(err, ErrorCodeUnavailable, what+" unavailable")
	}
	return Wrap(err, ErrorCodeQuery, what+" failed")
}
