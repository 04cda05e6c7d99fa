package rest

const (
	// ops
	RouteStatus  = "/status"
	RouteStats   = "/stats"
	RouteMetrics = "/metrics"

	// auth
	RouteConnect    = "/connect"
	RouteDisconnect = "/disconnect"

	// users
	RouteUsers   = "/users"
	RouteUsersMe = "/users/me"

	// files
	RouteFiles         = "/files"
	RouteFile          = "/files/:id"
	RouteFilePublish   = "/files/:id/publish"
	RouteFileUnpublish = "/files/:id/unpublish"
	RouteFileData      = "/files/:id/data"
)
