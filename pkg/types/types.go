package types

// ClientMessage represents a client pgwire message.
type ClientMessage byte

// ServerMessage represents a server pgwire message.
type ServerMessage byte

// DescribeMessage represents a client describe message type.
type DescribeMessage byte

// ServerStatus indicates the current transaction status reported in the
// ReadyForQuery message. The proxy never opens real transactions against
// the analytic backend, so it always reports ServerIdle.
type ServerStatus byte

// http://www.postgresql.org/docs/9.4/static/protocol-message-formats.html
//
// Only the message types exercised by the simple and extended query
// sub-protocols are kept; COPY and explicit statement/portal Close are out
// of scope for this proxy.
const (
	ClientBind        ClientMessage = 'B'
	ClientDescribe    ClientMessage = 'D'
	ClientExecute     ClientMessage = 'E'
	ClientParse       ClientMessage = 'P'
	ClientPassword    ClientMessage = 'p'
	ClientSimpleQuery ClientMessage = 'Q'
	ClientSync        ClientMessage = 'S'
	ClientTerminate   ClientMessage = 'X'

	ServerAuth            ServerMessage = 'R'
	ServerBackendKeyData  ServerMessage = 'K'
	ServerBindComplete    ServerMessage = '2'
	ServerCommandComplete ServerMessage = 'C'
	ServerDataRow         ServerMessage = 'D'
	ServerEmptyQuery      ServerMessage = 'I'
	ServerErrorResponse   ServerMessage = 'E'
	ServerNoticeResponse  ServerMessage = 'N'
	ServerNoData          ServerMessage = 'n'
	ServerParameterStatus ServerMessage = 'S'
	ServerParseComplete   ServerMessage = '1'
	ServerPortalSuspended ServerMessage = 's'
	ServerReady           ServerMessage = 'Z'
	ServerRowDescription  ServerMessage = 'T'

	DescribePortal    DescribeMessage = 'P'
	DescribeStatement DescribeMessage = 'S'

	ServerIdle              ServerStatus = 'I'
	ServerTransactionBlock  ServerStatus = 'T'
	ServerTransactionFailed ServerStatus = 'E'
)

func (m ClientMessage) String() string {
	switch m {
	case ClientBind:
		return "Bind"
	case ClientDescribe:
		return "Describe"
	case ClientExecute:
		return "Execute"
	case ClientParse:
		return "Parse"
	case ClientPassword:
		return "Password"
	case ClientSimpleQuery:
		return "SimpleQuery"
	case ClientSync:
		return "Sync"
	case ClientTerminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

func (m ServerMessage) String() string {
	switch m {
	case ServerAuth:
		return "Auth"
	case ServerBackendKeyData:
		return "BackendKeyData"
	case ServerBindComplete:
		return "BindComplete"
	case ServerCommandComplete:
		return "CommandComplete"
	case ServerDataRow:
		return "DataRow"
	case ServerEmptyQuery:
		return "EmptyQuery"
	case ServerErrorResponse:
		return "ErrorResponse"
	case ServerNoticeResponse:
		return "NoticeResponse"
	case ServerNoData:
		return "NoData"
	case ServerParameterStatus:
		return "ParameterStatus"
	case ServerParseComplete:
		return "ParseComplete"
	case ServerPortalSuspended:
		return "PortalSuspended"
	case ServerReady:
		return "Ready"
	case ServerRowDescription:
		return "RowDescription"
	default:
		return "Unknown"
	}
}

func (m DescribeMessage) String() string {
	switch m {
	case DescribePortal:
		return "Portal"
	case DescribeStatement:
		return "Statement"
	default:
		return "Unknown"
	}
}

func (s ServerStatus) String() string {
	switch s {
	case ServerIdle:
		return "Idle"
	case ServerTransactionBlock:
		return "InTransaction"
	case ServerTransactionFailed:
		return "TransactionFailed"
	default:
		return "Unknown"
	}
}
