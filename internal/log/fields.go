// Package log holds the shared field and component names used in structured
// log calls, so grep and log queries see one spelling per concept.
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

	FieldTransactionID   = "transaction_id"
	FieldTransactionType = "transaction_type"
	FieldAmount          = "amount"
	FieldDate            = "date"
	FieldCategoryID      = "category_id"
	FieldWeekStart       = "week_start"
	FieldWeekEnd         = "week_end"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentStorage   = "storage"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names
const (
	OpFetchAll    = "fetch_all"
	OpFetchWeekly = "fetch_weekly"
	OpAdd         = "add"
	OpEdit        = "edit"
	OpDelete      = "delete"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)
