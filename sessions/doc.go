// Package sessions defines the session abstraction shared by the stdio
// transport and server capability code. A session represents the negotiated
// protocol version, the local principal and the client identity for one
// connected client.
//
// The stdio transport creates exactly one Local session per process when the
// client sends initialize, marks it open on notifications/initialized and
// hands it to every capability call. Tool handlers receive it as
// sessions.Session and may use it for logging or per-client decisions; the
// GitBook tools do not depend on it.
package sessions
