package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus(ctx context.Context) string {
	user := a.authService.CurrentUser(ctx)
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Email, user.Role)
}

// Run shows the start view and then serves commands until the user exits.
// The storage is closed on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "close storage", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Admin Panel console (type 'help' for commands)")
	if err := a.router.Open(ctx, RootPath); err != nil {
		printlnFn("Error:", err)
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
