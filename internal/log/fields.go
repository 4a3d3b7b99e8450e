package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldRecordID   = "record_id"
	FieldRecordKind = "record_kind"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldRange      = "range"
	FieldFrequency  = "billing_frequency"
	FieldQueue      = "queue"
	FieldExchange   = "exchange"
	FieldSheetsRef  = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentReport    = "report"
	ComponentDashboard = "dashboard"
	ComponentRecords   = "records"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentRealtime  = "realtime"
	ComponentScheduler = "scheduler"
	ComponentExport    = "export"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpAggregate = "aggregate"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpExport    = "export"
	OpNotify    = "notify"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
