package constants

const (
	//分頁
	DefaultProductListSize int = 12
	MaxProductListSize     int = 100
	DefaultPaymentListSize int = 100
	MaxPaymentListSize     int = 1000
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	AuthorizationUserKey    ContextKey = "authorization_user"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader string    = "X-Request-ID"
)
