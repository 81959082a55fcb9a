package pgproxy

// sslIdentifier represents a the bytes identifying whether the given connection
// supports SSL.
type sslIdentifier []byte

// sslUnsupported is the single response byte this proxy ever sends to an
// SSLRequest or GSSENCRequest: TLS negotiation is out of scope (spec
// Non-goals), so every such request is declined.
var sslUnsupported sslIdentifier = []byte{'N'}
