// Package command exposes go-command compatible command handlers implementing
// the user store mutations (initialize, create, change email, delete). Every
// handler runs its work inside one session obtained from the configured
// types.SessionProvider, so a failure leaves no partial effect.
package command
