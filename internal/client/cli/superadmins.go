package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/adminpanel/internal/client/services"
	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// createSuperAdminView collects the create form, reports every invalid field
// and returns to the dashboard once the record is saved.
func (a *App) createSuperAdminView(ctx context.Context, _ Params) error {
	fmt.Fprintln(a.out, "Create Super Admin (all fields are required)")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	superAdminID, err := getSimpleText(a.reader, "Super Admin ID", a.out)
	if err != nil {
		return err
	}
	orgID, err := getSimpleText(a.reader, "Organization ID", a.out)
	if err != nil {
		return err
	}

	record, err := a.superAdmins.Create(ctx, services.CreateRequest{
		Email:        email,
		Password:     string(password),
		SuperAdminID: superAdminID,
		OrgID:        orgID,
	})
	if verr, ok := services.IsValidationError(err); ok {
		for _, field := range slices.Sorted(maps.Keys(verr)) {
			fmt.Fprintf(a.out, "  %s: %s\n", field, verr[field])
		}
		return nil
	}
	if err != nil {
		a.logger.Error(ctx, "create super admin", "error", err)
		fmt.Fprintln(a.out, "Error: Failed to create super admin. Please try again.")
		return nil
	}

	fmt.Fprintf(a.out, "Success! Super admin created successfully (id %s).\n", record.ID)
	a.router.Navigate(ctx, DashboardPath)
	return nil
}

// listSuperAdminsView prints the records matching the "q" parameter.
func (a *App) listSuperAdminsView(ctx context.Context, p Params) error {
	term := p["q"]
	records := a.superAdmins.List(ctx, term)

	fmt.Fprintln(a.out, "Super Administrators")
	if len(records) == 0 {
		if term == "" {
			fmt.Fprintln(a.out, "No super admins yet. Use 'create' to add the first one.")
		} else {
			fmt.Fprintf(a.out, "No super admins match %q.\n", term)
		}
		return nil
	}

	if err := a.printSuperAdmins(records); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d record(s). Use 'show <id>' for details.\n", len(records))
	return nil
}

// superAdminView prints one record; unknown ids go back to the list.
func (a *App) superAdminView(ctx context.Context, p Params) error {
	record, err := a.superAdmins.Get(ctx, p["id"])
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintln(a.out, "Super admin not found")
		a.router.Navigate(ctx, ViewSuperAdminsPath)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Super Admin Details")
	fmt.Fprintf(a.out, "  Email:           %s\n", record.Email)
	fmt.Fprintf(a.out, "  Super Admin ID:  %s\n", record.SuperAdminID)
	fmt.Fprintf(a.out, "  Organization ID: %s\n", record.OrgID)
	fmt.Fprintf(a.out, "  Created:         %s\n", createdDate(record))
	fmt.Fprintf(a.out, "  Record ID:       %s\n", record.ID)
	return nil
}
