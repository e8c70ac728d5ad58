// Package cli provides the interactive admin console.
//
// It wires configuration, the durable namespace, the record store and the
// application services, then serves views through a small router. Views
// behind the session guard (dashboard, create, list, detail) send the user to
// the login view when no session is stored.
//
// Views and their paths:
//   - /                      start: dashboard with a session, login without
//   - /login                 sign in
//   - /dashboard             statistics and the newest records
//   - /create-super-admin    create form
//   - /view-super-admins     list, filtered by ?q=term
//   - /super-admin/{id}      record details
//   - /otp-verification      forgot-password code entry
//   - /new-password          new password after a verified code
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the commands.
package cli
