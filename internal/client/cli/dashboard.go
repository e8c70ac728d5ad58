package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/adminpanel/internal/client/guard"
	"github.com/dmitrijs2005/adminpanel/internal/client/models"
)

const dateLayout = "2006-01-02"

func (a *App) dashboardView(ctx context.Context, _ Params) error {
	user, _ := guard.UserFromContext(ctx)
	stats := a.superAdmins.Stats(ctx)

	fmt.Fprintln(a.out, "Admin Dashboard")
	fmt.Fprintf(a.out, "Welcome back, %s\n\n", user.Email)

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total super admins\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Organizations\t%d\n", stats.Organizations)
	fmt.Fprintf(tw, "Added this week\t%d\n", stats.LastWeek)
	fmt.Fprintf(tw, "Your role\t%s\n", user.Role)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	if len(stats.MostRecent) == 0 {
		fmt.Fprintln(a.out, "No super admins yet. Use 'create' to add the first one.")
		return nil
	}

	fmt.Fprintln(a.out, "Recent super admins:")
	return a.printSuperAdmins(stats.MostRecent)
}

func (a *App) printSuperAdmins(records []models.SuperAdmin) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tSUPER ADMIN ID\tORG ID\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Email, r.SuperAdminID, r.OrgID, createdDate(r))
	}
	return tw.Flush()
}

// createdDate renders the creation date in local time, or the raw value
// when it cannot be parsed.
func createdDate(r models.SuperAdmin) string {
	t, ok := r.CreatedTime()
	if !ok {
		return r.CreatedAt
	}
	return t.Local().Format(dateLayout)
}
