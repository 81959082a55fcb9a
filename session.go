package pgproxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/columnarwire/pgproxy/codes"
	pgerror "github.com/columnarwire/pgproxy/errors"
	"github.com/columnarwire/pgproxy/internal/backend"
	"github.com/columnarwire/pgproxy/internal/catalog"
	"github.com/columnarwire/pgproxy/internal/metrics"
	"github.com/columnarwire/pgproxy/internal/sqltag"
	"github.com/columnarwire/pgproxy/pkg/buffer"
	"github.com/columnarwire/pgproxy/pkg/types"
)

// placeholderPattern matches the BI tool's client-side placeholder tokens
// (e.g. "$Table") so they can be stripped before a query reaches the
// backend. The source leaves the exact substitution rule as a TODO; this
// proxy resolves it by deleting any dollar-prefixed identifier wholesale
// (see DESIGN.md).
var placeholderPattern = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

func stripPlaceholders(sql string) string {
	return placeholderPattern.ReplaceAllString(sql, "")
}

// portalState holds the result of the most recent Parse within one
// Extended Query cycle. This proxy never caches statements or portals
// across cycles (spec non-goal); the slot is discarded at Sync.
type portalState struct {
	sql     string
	columns []ColumnDescriptor
	rows    [][]any
	sent    int
	failed  bool
	params  []Parameter
}

// session is the per-connection state machine. It is strictly sequential:
// read, advance state, write, read again.
type session struct {
	logger  *slog.Logger
	writer  *buffer.Writer
	reader  *buffer.Reader
	backend backend.Conn
	metrics *metrics.Collector
}

// handleSimpleQuery implements the SimpleQuery state (spec 4.B): extract the
// SQL text, special-case DISCARD ALL, then route to the catalog emulator or
// the backend adapter and emit the full response burst directly (Simple
// Query never batches responses the way Extended Query does).
func (s *session) handleSimpleQuery(ctx context.Context) {
	raw, err := s.reader.GetString()
	if err != nil {
		err = pgerror.WithCode(err, codes.ProtocolViolation)
		s.recordQueryError(err)
		ErrorCode(s.writer, err)
		return
	}

	sql := strings.TrimSpace(raw)

	if strings.EqualFold(sql, catalog.DiscardAll) {
		s.handleDiscardAll(ctx)
		return
	}

	started := time.Now()
	columns, rows, path, err := s.resolveQuery(ctx, sql)
	if err != nil {
		s.recordQueryError(err)
		ErrorCode(s.writer, err)
		return
	}
	s.metrics.QueryDuration(path, time.Since(started))

	if err := writeRowDescription(s.writer, columns); err != nil {
		ErrorCode(s.writer, pgerror.WithCode(err, codes.Internal))
		return
	}

	for _, row := range rows {
		if err := writeDataRow(TypeInfo(ctx), s.writer, columns, row); err != nil {
			ErrorCode(s.writer, pgerror.WithCode(err, codes.Internal))
			return
		}
	}

	s.writer.Start(types.ServerCommandComplete)
	s.writer.AddString(fmt.Sprintf("%s %d", sqltag.Command(sql), len(rows)))
	s.writer.AddNullTerminate()
	if err := s.writer.End(); err != nil {
		return
	}

	readyForQuery(s.writer, types.ServerIdle)
}

// handleDiscardAll implements the DISCARD ALL special case: reset the two
// session-scoped parameters the backend would otherwise track, then the
// matching CommandComplete and ReadyForQuery.
func (s *session) handleDiscardAll(ctx context.Context) {
	username := ClientParameters(ctx)[ParamUsername]

	writeParameterStatus(s.writer, ParamIsSuperuser, "on")
	writeParameterStatus(s.writer, ParamSessionAuthorization, username)

	s.writer.Start(types.ServerCommandComplete)
	s.writer.AddString(catalog.DiscardAll)
	s.writer.AddNullTerminate()
	if err := s.writer.End(); err != nil {
		return
	}

	readyForQuery(s.writer, types.ServerIdle)
}

// resolveQuery routes sql to the catalog emulator if its fingerprint is
// recognized, otherwise to the backend adapter, and reports which path was
// taken for metrics.
func (s *session) resolveQuery(ctx context.Context, sql string) (columns []ColumnDescriptor, rows [][]any, path string, err error) {
	kind := catalog.Classify(sql)
	if kind != catalog.Unknown {
		resp, err := catalog.Build(ctx, kind, sql, s.backend)
		if err != nil {
			var unsupported backend.ErrUnsupportedType
			if errors.As(err, &unsupported) {
				return nil, nil, "catalog", pgerror.WithCode(err, codes.FeatureNotSupported)
			}
			return nil, nil, "catalog", pgerror.WithCode(err, codes.System)
		}

		columns := make([]ColumnDescriptor, len(resp.Columns))
		for i, c := range resp.Columns {
			columns[i] = NewColumnDescriptor(c.Name, int16(i+1), c.TypeOID, c.TypeLen, BinaryFormat)
		}

		return columns, resp.Rows, "catalog", nil
	}

	result, err := s.backend.Execute(ctx, sql)
	if err != nil {
		return nil, nil, "backend", pgerror.WithCode(err, codes.System)
	}

	columns = make([]ColumnDescriptor, len(result.Columns))
	for i, c := range result.Columns {
		oid, _, length, err := backend.MapOID(c.TypeTag)
		if err != nil {
			return nil, nil, "backend", pgerror.WithCode(err, codes.FeatureNotSupported)
		}

		columns[i] = NewColumnDescriptor(c.Name, int16(i+1), oid, length, TextFormat)
	}

	return columns, result.Rows, "backend", nil
}

func (s *session) recordQueryError(err error) {
	s.metrics.QueryError(string(pgerror.GetCode(err)))
}

// handleExtendedQuery implements the ExtendedQuery state (spec 4.B): it
// reads Parse/Bind/Describe/Execute messages, staging their responses in an
// in-memory buffer, and only flushes that buffer as a single write once
// Sync arrives. A failure during Parse or Execute instead writes
// ErrorResponse and ReadyForQuery immediately and silently discards every
// remaining message in the cycle until Sync (spec 4.B/7).
func (s *session) handleExtendedQuery(ctx context.Context, first types.ClientMessage) error {
	var staged bytes.Buffer
	stage := buffer.NewWriter(s.logger, &staged)
	portal := &portalState{}

	t := first
	for {
		var err error

		switch t {
		case types.ClientParse:
			err = s.handleParse(ctx, stage, portal)
		case types.ClientBind:
			err = s.handleBind(stage, portal)
		case types.ClientDescribe:
			err = s.handleDescribe(stage, portal)
		case types.ClientExecute:
			err = s.handleExecute(ctx, stage, portal)
		case types.ClientSync:
			if !portal.failed {
				if staged.Len() > 0 {
					if _, werr := s.writer.Write(staged.Bytes()); werr != nil {
						return werr
					}
				}
				readyForQuery(s.writer, types.ServerIdle)
			}
			return nil
		default:
			s.failPortal(portal, pgerror.WithCode(
				fmt.Errorf("unexpected message %q during extended query", t.String()), codes.ProtocolViolation))
		}

		if err != nil {
			return err
		}

		next, _, err := s.reader.ReadTypedMsg()
		if err != nil {
			return err
		}
		t = next
	}
}

// failPortal marks the portal as failed and writes ErrorResponse +
// ReadyForQuery directly to the client, bypassing the staging buffer so the
// client is told immediately rather than at the next Sync.
func (s *session) failPortal(portal *portalState, err error) {
	portal.failed = true
	s.recordQueryError(err)
	ErrorCode(s.writer, err)
}

// handleParse resolves the SQL now (spec: "resolve the SQL now (catalog vs
// backend)") and caches the result in the portal slot.
func (s *session) handleParse(ctx context.Context, stage *buffer.Writer, portal *portalState) error {
	if _, err := s.reader.GetString(); err != nil { // statement name, unused: no cross-cycle caching
		return err
	}

	sql, err := s.reader.GetString()
	if err != nil {
		return err
	}

	nParams, err := s.reader.GetUint16()
	if err != nil {
		return err
	}
	for i := 0; i < int(nParams); i++ {
		if _, err := s.reader.GetUint32(); err != nil {
			return err
		}
	}

	if portal.failed {
		return nil
	}

	sql = stripPlaceholders(sql)

	started := time.Now()
	columns, rows, path, err := s.resolveQuery(ctx, sql)
	if err != nil {
		s.failPortal(portal, err)
		return nil
	}
	s.metrics.QueryDuration(path, time.Since(started))

	portal.sql = sql
	portal.columns = columns
	portal.rows = rows

	stage.Start(types.ServerParseComplete)
	return stage.End()
}

// handleBind consumes the Bind payload, keeping each bound Parameter around
// on the portal for diagnostics. This proxy never substitutes bind
// parameters into a catalog or backend query (they were already resolved at
// Parse time via stripPlaceholders), so binding never changes portal.sql.
func (s *session) handleBind(stage *buffer.Writer, portal *portalState) error {
	if _, err := s.reader.GetString(); err != nil { // portal name
		return err
	}
	if _, err := s.reader.GetString(); err != nil { // statement name
		return err
	}

	nFormats, err := s.reader.GetUint16()
	if err != nil {
		return err
	}
	formats := make([]FormatCode, nFormats)
	for i := range formats {
		code, err := s.reader.GetUint16()
		if err != nil {
			return err
		}
		formats[i] = FormatCode(code)
	}

	nValues, err := s.reader.GetUint16()
	if err != nil {
		return err
	}
	params := make([]Parameter, 0, nValues)
	for i := 0; i < int(nValues); i++ {
		length, err := s.reader.GetInt32()
		if err != nil {
			return err
		}
		value, err := s.reader.GetBytes(int(length))
		if err != nil {
			return err
		}

		format := TextFormat
		if len(formats) == 1 {
			format = formats[0]
		} else if i < len(formats) {
			format = formats[i]
		}
		params = append(params, NewParameter(format, value))
	}
	portal.params = params

	nResultFormats, err := s.reader.GetUint16()
	if err != nil {
		return err
	}
	for i := 0; i < int(nResultFormats); i++ {
		if _, err := s.reader.GetUint16(); err != nil {
			return err
		}
	}

	if len(portal.params) > 0 {
		s.logger.Debug("bind parameters ignored, query already resolved at parse time",
			slog.Int("count", len(portal.params)))
	}

	if portal.failed {
		return nil
	}

	if portal.sql == "" {
		s.failPortal(portal, pgerror.WithCode(fmt.Errorf("bind without a preceding parse"), codes.ProtocolViolation))
		return nil
	}

	stage.Start(types.ServerBindComplete)
	return stage.End()
}

// handleDescribe emits RowDescription for either the portal or the
// statement. Per spec, describing the statement always reports text format
// regardless of the column's resolved format (no Bind has happened from the
// statement's point of view).
func (s *session) handleDescribe(stage *buffer.Writer, portal *portalState) error {
	kindByte, err := s.reader.GetBytes(1)
	if err != nil {
		return err
	}
	if _, err := s.reader.GetString(); err != nil { // name
		return err
	}

	if portal.failed {
		return nil
	}

	if portal.sql == "" {
		s.failPortal(portal, pgerror.WithCode(fmt.Errorf("describe without a preceding parse"), codes.ProtocolViolation))
		return nil
	}

	columns := portal.columns
	if len(kindByte) == 1 && types.DescribeMessage(kindByte[0]) == types.DescribeStatement {
		columns = asTextFormat(columns)
	}

	return writeRowDescription(stage, columns)
}

func asTextFormat(columns []ColumnDescriptor) []ColumnDescriptor {
	out := make([]ColumnDescriptor, len(columns))
	for i, c := range columns {
		c.Format = TextFormat
		out[i] = c
	}
	return out
}

// handleExecute emits the portal's rows, honoring maxRows: when fewer rows
// are returned than remain, PortalSuspended is emitted instead of
// CommandComplete and the portal's cursor is preserved for a later Execute.
func (s *session) handleExecute(ctx context.Context, stage *buffer.Writer, portal *portalState) error {
	if _, err := s.reader.GetString(); err != nil { // portal name
		return err
	}
	maxRows, err := s.reader.GetInt32()
	if err != nil {
		return err
	}

	if portal.failed {
		return nil
	}

	if portal.sql == "" {
		s.failPortal(portal, pgerror.WithCode(fmt.Errorf("execute without a preceding parse"), codes.ProtocolViolation))
		return nil
	}

	remaining := portal.rows[portal.sent:]
	limit := len(remaining)
	suspended := maxRows > 0 && int(maxRows) < len(remaining)
	if suspended {
		limit = int(maxRows)
	}

	for _, row := range remaining[:limit] {
		if err := writeDataRow(TypeInfo(ctx), stage, portal.columns, row); err != nil {
			s.failPortal(portal, pgerror.WithCode(err, codes.Internal))
			return nil
		}
	}
	portal.sent += limit

	if suspended {
		stage.Start(types.ServerPortalSuspended)
		return stage.End()
	}

	stage.Start(types.ServerCommandComplete)
	stage.AddString(fmt.Sprintf("%s %d", sqltag.Command(portal.sql), limit))
	stage.AddNullTerminate()
	return stage.End()
}
