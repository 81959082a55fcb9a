package pgproxy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/columnarwire/pgproxy/pkg/buffer"
	"github.com/columnarwire/pgproxy/pkg/types"
)

// writeStartupLike writes a length-prefixed, untyped frame (the framing used
// for Startup, SSLRequest and CancelRequest packets): a 4-byte big-endian
// length covering itself plus the body, followed by the body.
func writeStartupLike(body []byte) []byte {
	frame := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(frame[:4], uint32(len(frame)))
	copy(frame[4:], body)
	return frame
}

func versionFrame(code types.Version, rest []byte) []byte {
	body := make([]byte, 4+len(rest))
	binary.BigEndian.PutUint32(body[:4], uint32(code))
	copy(body[4:], rest)
	return writeStartupLike(body)
}

func startupBody(params map[string]string) []byte {
	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, uint32(types.Version30))

	for k, v := range params {
		body = append(body, []byte(k)...)
		body = append(body, 0)
		body = append(body, []byte(v)...)
		body = append(body, 0)
	}

	return append(body, 0)
}

func TestHandshake_DeclinesSSLThenStartup(t *testing.T) {
	t.Parallel()

	in := new(bytes.Buffer)
	in.Write(versionFrame(types.VersionSSLRequest, nil))
	in.Write(writeStartupLike(startupBody(map[string]string{"user": "alice", "database": "analytics"})))

	out := new(bytes.Buffer)
	reader := buffer.NewReader(slogt.New(t), in, 0)
	writer := buffer.NewWriter(slogt.New(t), out)

	params, err := Handshake(reader, writer)
	require.NoError(t, err)
	assert.Equal(t, "alice", params[ParamUsername])
	assert.Equal(t, "analytics", params["database"])
	assert.Equal(t, []byte("N"), out.Bytes())
}

func TestHandshake_CancelRequest(t *testing.T) {
	t.Parallel()

	in := new(bytes.Buffer)
	in.Write(versionFrame(types.VersionCancel, []byte{0, 0, 0, 1, 0, 0, 0, 2}))

	out := new(bytes.Buffer)
	reader := buffer.NewReader(slogt.New(t), in, 0)
	writer := buffer.NewWriter(slogt.New(t), out)

	_, err := Handshake(reader, writer)
	assert.True(t, errors.Is(err, errCancelRequest))
	assert.Empty(t, out.Bytes())
}

func TestHandshake_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	in := new(bytes.Buffer)
	in.Write(versionFrame(types.Version(1), nil))

	out := new(bytes.Buffer)
	reader := buffer.NewReader(slogt.New(t), in, 0)
	writer := buffer.NewWriter(slogt.New(t), out)

	_, err := Handshake(reader, writer)
	assert.Error(t, err)
}

func TestEmitParameterStatus(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	writer := buffer.NewWriter(slogt.New(t), out)

	require.NoError(t, emitParameterStatus(writer, "alice"))

	reader := buffer.NewReader(slogt.New(t), out, 0)

	typed, _, err := reader.ReadTypedMsg()
	require.NoError(t, err)
	assert.Equal(t, types.ServerAuth, typed)
	code, err := reader.GetInt32()
	require.NoError(t, err)
	assert.EqualValues(t, 0, code)

	defaults := parameterStatusDefaults("alice")
	for _, want := range defaults {
		typed, _, err := reader.ReadTypedMsg()
		require.NoError(t, err)
		assert.Equal(t, types.ServerParameterStatus, typed)

		name, err := reader.GetString()
		require.NoError(t, err)
		assert.Equal(t, string(want.name), name)

		value, err := reader.GetString()
		require.NoError(t, err)
		assert.Equal(t, want.value, value)
	}

	typed, _, err = reader.ReadTypedMsg()
	require.NoError(t, err)
	assert.Equal(t, types.ServerReady, typed)
	status, err := reader.GetBytes(1)
	require.NoError(t, err)
	assert.Equal(t, byte(types.ServerIdle), status[0])
}
