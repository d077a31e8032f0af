// Package clientip resolves the originating client address of an HTTP
// request behind reverse proxies.
//
// Only headers the deployment's proxy actually sets should be trusted; any
// other header is client controlled. The API server takes the list from
// HTTP_TRUSTED_IP_HEADERS.
//
//	r.Use(clientip.Middleware("CF-Connecting-IP", "X-Forwarded-For"))
//
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
