// Package api is the remote API contract of the prediction game backend and
// its JSON-over-HTTP implementation.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     match listing, the session endpoints (login, logout) and the account
//     administration endpoints (register, reset password, delete user,
//     change password).
//  2. A concrete fasthttp implementation (see HTTPClient) that sends JSON,
//     attaches a bearer token on authenticated calls, tags every request
//     with an X-Request-ID and honours context deadlines.
//
// # Error Handling
//
// A resolved call always yields a *Response carrying the HTTP status. A
// non-2xx status is a rejection reported as *ResponseError, which carries
// the server "message" when the body has one; a 401 also matches
// ErrUnauthorized with errors.Is. Network failures wrap ErrUnavailable.
package api
