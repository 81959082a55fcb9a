package pgproxy

import (
	"context"

	"github.com/columnarwire/pgproxy/pkg/buffer"
	"github.com/columnarwire/pgproxy/pkg/types"
)

// md5Salt is the fixed salt advertised in every AuthenticationMD5Password
// challenge. The password is never actually validated (see DESIGN.md), so a
// random salt would buy no security; a fixed one keeps the handshake
// byte-for-byte reproducible, which is what the spec's end-to-end scenarios
// pin down.
var md5Salt = [4]byte{0x12, 0x34, 0x56, 0x78}

// requestMD5Password writes AuthenticationMD5Password, transitioning the
// session into AwaitPassword.
func requestMD5Password(writer *buffer.Writer) error {
	writer.Start(types.ServerAuth)
	writer.AddInt32(5)
	writer.AddBytes(md5Salt[:])
	return writer.End()
}

// awaitPassword reads the client's response to an MD5 password challenge.
// The password is accepted unconditionally; ok is false when the client
// sent something other than a 'p' message, which the caller treats as a
// desynchronisation guard rather than a fatal error.
func awaitPassword(reader *buffer.Reader) (ok bool, err error) {
	t, _, err := reader.ReadTypedMsg()
	if err != nil {
		return false, err
	}

	if t != types.ClientPassword {
		return false, nil
	}

	if _, err := reader.GetString(); err != nil {
		return false, err
	}

	return true, nil
}

// IsSuperUser reports whether the given connection context belongs to a
// superuser. The proxy reports is_superuser=on to every client (see
// ParamIsSuperuser), so this always returns true once a session is
// authenticated.
func IsSuperUser(_ context.Context) bool {
	return true
}

// AuthenticatedUsername returns the username supplied during the startup
// handshake.
func AuthenticatedUsername(ctx context.Context) string {
	return ClientParameters(ctx)[ParamUsername]
}
