package tracing

// Span attribute keys.
const (
	AttrCommandID     = "command.id"
	AttrCommandType   = "command.type"
	AttrCommandSource = "command.source"

	AttrSender = "ledger.sender"
	AttrHeight = "ledger.height"

	AttrRegistry  = "record.registry"
	AttrRecordID  = "record.id"
	AttrAction    = "record.action"
	AttrErrorKind = "error.kind"
	AttrErrorCode = "error.code"
)

// SpanPrefixCommand prefixes the span name of every processed command.
const SpanPrefixCommand = "ledger.tx."

// EventRecordCommitted is added to the command span for each committed record.
const EventRecordCommitted = "record.committed"
