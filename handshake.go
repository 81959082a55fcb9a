package pgproxy

import (
	"errors"
	"fmt"

	"github.com/columnarwire/pgproxy/codes"
	pgerror "github.com/columnarwire/pgproxy/errors"
	"github.com/columnarwire/pgproxy/pkg/buffer"
	"github.com/columnarwire/pgproxy/pkg/types"
)

// errCancelRequest signals that the first frame of a connection was a
// CancelRequest: the socket must simply be closed, no response sent.
var errCancelRequest = errors.New("cancel request")

// Handshake drives the AwaitStartup state to completion: it declines any
// number of SSL/GSSENC negotiation requests in a row and returns the parsed
// client parameters once a Startup v3 packet arrives. errCancelRequest is
// returned for a CancelRequest; any other code is a protocol violation.
func Handshake(reader *buffer.Reader, writer *buffer.Writer) (Parameters, error) {
	for {
		if _, err := reader.ReadUntypedMsg(); err != nil {
			return nil, err
		}

		code, err := reader.GetUint32()
		if err != nil {
			return nil, err
		}

		switch types.Version(code) {
		case types.VersionSSLRequest, types.VersionGSSENC:
			if _, err := writer.Write(sslUnsupported); err != nil {
				return nil, err
			}
			continue
		case types.VersionCancel:
			return nil, errCancelRequest
		case types.Version30:
			return startupParams(reader)
		default:
			return nil, pgerror.WithCode(fmt.Errorf("unsupported startup code: %d", code), codes.ProtocolViolation)
		}
	}
}

// startupParams reads the name\0value\0 sequence, terminated by an empty
// name, that follows the version code in a Startup packet.
func startupParams(reader *buffer.Reader) (Parameters, error) {
	params := make(Parameters)

	for {
		name, err := reader.GetString()
		if err != nil {
			return nil, err
		}

		if name == "" {
			return params, nil
		}

		value, err := reader.GetString()
		if err != nil {
			return nil, err
		}

		params[ParameterStatus(name)] = value
	}
}

// writeParameterStatus writes a single ParameterStatus ('S') message.
func writeParameterStatus(writer *buffer.Writer, name ParameterStatus, value string) error {
	writer.Start(types.ServerParameterStatus)
	writer.AddString(string(name))
	writer.AddNullTerminate()
	writer.AddString(value)
	writer.AddNullTerminate()
	return writer.End()
}

// writeAuthenticationOk writes the AuthenticationOk ('R', code 0) message.
func writeAuthenticationOk(writer *buffer.Writer) error {
	writer.Start(types.ServerAuth)
	writer.AddInt32(0)
	return writer.End()
}

// readyForQuery writes a ReadyForQuery ('Z') message. This proxy never
// opens real backend transactions on the client's behalf, so status is
// always ServerIdle in practice.
func readyForQuery(writer *buffer.Writer, status types.ServerStatus) error {
	writer.Start(types.ServerReady)
	writer.AddByte(byte(status))
	return writer.End()
}

// parameterStatusDefaults is the fixed set of ParameterStatus values this
// proxy reports after authentication, in emission order.
func parameterStatusDefaults(username string) []struct {
	name  ParameterStatus
	value string
} {
	return []struct {
		name  ParameterStatus
		value string
	}{
		{ParamClientEncoding, "UTF8"},
		{"DateStyle", "ISO, MDY"},
		{"integer_datetimes", "on"},
		{"IntervalStyle", "postgres"},
		{ParamIsSuperuser, "on"},
		{ParamServerEncoding, "UTF8"},
		{ParamServerVersion, "12.7"},
		{ParamSessionAuthorization, username},
		{"standard_conforming_strings", "on"},
	}
}

// emitParameterStatus completes the ParamStatusEmit state: AuthenticationOk,
// the fixed ParameterStatus defaults, then ReadyForQuery.
func emitParameterStatus(writer *buffer.Writer, username string) error {
	if err := writeAuthenticationOk(writer); err != nil {
		return err
	}

	for _, p := range parameterStatusDefaults(username) {
		if err := writeParameterStatus(writer, p.name, p.value); err != nil {
			return err
		}
	}

	return readyForQuery(writer, types.ServerIdle)
}
