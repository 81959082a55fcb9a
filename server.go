// Package pgproxy implements a PostgreSQL v3 wire-protocol front-end that
// fronts a columnar analytic store: it speaks Postgres to client tools and
// translates their sessions into queries against the backend's own
// protocol, emulating the pg_catalog/information_schema introspection a
// Postgres-aware BI client performs before issuing real queries.
package pgproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/columnarwire/pgproxy/codes"
	pgerror "github.com/columnarwire/pgproxy/errors"
	"github.com/columnarwire/pgproxy/internal/backend"
	"github.com/columnarwire/pgproxy/internal/metrics"
	"github.com/columnarwire/pgproxy/pkg/buffer"
	"github.com/columnarwire/pgproxy/pkg/types"
)

// BufferedMsgSize is the default per-connection read buffer size.
const BufferedMsgSize = buffer.DefaultBufferSize

// Server accepts Postgres wire connections and serves them against a single
// shared backend connection (spec 5: shared-resource policy).
type Server struct {
	logger  *slog.Logger
	backend backend.Conn
	metrics *metrics.Collector
	typeMap *pgtype.Map

	closing bool
	mu      sync.Mutex
	wg      sync.WaitGroup
}

// NewServer constructs a Server bound to the given backend connection. The
// backend is shared across every client session; its adapter is
// responsible for serializing concurrent Execute calls (internal/backend).
func NewServer(be backend.Conn, options ...OptionFn) *Server {
	srv := &Server{
		backend: be,
		logger:  slog.Default(),
		metrics: metrics.New(),
		typeMap: pgtype.NewMap(),
	}

	for _, option := range options {
		option(srv)
	}

	return srv
}

// Metrics returns the server's metrics collector, so a caller can expose its
// registry over HTTP (e.g. via promhttp) independently of the wire listener.
func (srv *Server) Metrics() *metrics.Collector {
	return srv.metrics
}

// ListenAndServe opens a TCP listener on address and serves it until the
// listener is closed or the context is cancelled.
func (srv *Server) ListenAndServe(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	srv.logger.Info("listening for connections", slog.String("address", address))
	return srv.Serve(ctx, listener)
}

// Serve accepts connections from listener, spawning one goroutine per
// connection, until the context is cancelled or the listener closes.
func (srv *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		srv.Close(listener)
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			srv.mu.Lock()
			closing := srv.closing
			srv.mu.Unlock()

			if closing {
				srv.wg.Wait()
				return nil
			}

			return err
		}

		srv.wg.Add(1)
		go func() {
			defer srv.wg.Done()
			srv.serveConn(ctx, conn)
		}()
	}
}

// Close marks the server as shutting down and closes the listener; in-flight
// connections are allowed to finish.
func (srv *Server) Close(listener net.Listener) error {
	srv.mu.Lock()
	srv.closing = true
	srv.mu.Unlock()

	return listener.Close()
}

// serveConn drives one connection end to end: handshake, authentication,
// parameter status, then the query loop, until the client disconnects or
// sends Terminate.
func (srv *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	srv.metrics.ConnectionOpened()
	defer srv.metrics.ConnectionClosed()

	logger := srv.logger.With(slog.String("remote", conn.RemoteAddr().String()))
	reader := buffer.NewReader(logger, conn, BufferedMsgSize)
	writer := buffer.NewWriter(logger, conn)

	params, err := Handshake(reader, writer)
	if err != nil {
		if !errors.Is(err, errCancelRequest) && !errors.Is(err, io.EOF) {
			logger.Debug("handshake failed", slog.Any("error", err))
			ErrorCode(writer, err)
		}
		return
	}

	if err := requestMD5Password(writer); err != nil {
		return
	}

	for {
		ok, err := awaitPassword(reader)
		if err != nil {
			logger.Debug("reading password failed", slog.Any("error", err))
			return
		}
		if ok {
			break
		}

		srv.metrics.AuthFailure()

		// Desynchronisation guard (spec 4.B AwaitPassword): re-prompt
		// rather than reinterpret an already-typed message as a fresh
		// length-prefixed startup frame.
		if err := requestMD5Password(writer); err != nil {
			return
		}
	}

	username := params[ParamUsername]
	if err := emitParameterStatus(writer, username); err != nil {
		return
	}

	serverParams := make(Parameters, len(parameterStatusDefaults(username)))
	for _, p := range parameterStatusDefaults(username) {
		serverParams[p.name] = p.value
	}

	ctx = setClientParameters(ctx, params)
	ctx = setServerParameters(ctx, serverParams)
	ctx = setTypeInfo(ctx, srv.typeMap)

	sess := &session{
		logger:  logger,
		reader:  reader,
		writer:  writer,
		backend: srv.backend,
		metrics: srv.metrics,
	}

	sess.run(ctx)
}

// run implements the AwaitQuery state: dispatch each incoming message to
// the Simple or Extended Query sub-protocol until Terminate or a transport
// error ends the connection.
func (s *session) run(ctx context.Context) {
	for {
		t, _, err := s.reader.ReadTypedMsg()
		if err != nil {
			return
		}

		switch t {
		case types.ClientSimpleQuery:
			s.handleSimpleQuery(ctx)
		case types.ClientParse, types.ClientBind, types.ClientDescribe, types.ClientExecute:
			if err := s.handleExtendedQuery(ctx, t); err != nil {
				return
			}
		case types.ClientSync:
			readyForQuery(s.writer, types.ServerIdle)
		case types.ClientTerminate:
			return
		default:
			err := pgerror.WithCode(
				fmt.Errorf("unexpected message %q while idle", t.String()), codes.ProtocolViolation)
			s.recordQueryError(err)
			ErrorCode(s.writer, err)
		}
	}
}
