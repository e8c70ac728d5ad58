package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// MenuItem is one navigation entry. Items without a Path are placeholders
// for sections the console does not have yet.
type MenuItem struct {
	Title string
	Path  string
}

// MenuGroup is a titled list of items.
type MenuGroup struct {
	Title string
	Items []MenuItem
}

var menuGroups = []MenuGroup{
	{
		Title: "Main Menu",
		Items: []MenuItem{
			{Title: "Dashboard", Path: DashboardPath},
			{Title: "Super Admins", Path: ViewSuperAdminsPath},
			{Title: "Organizations"},
			{Title: "Analytics"},
			{Title: "Settings"},
		},
	},
	{
		Title: "Quick Actions",
		Items: []MenuItem{
			{Title: "Create Super Admin", Path: CreateSuperAdminPath},
			{Title: "User Management"},
			{Title: "System Settings"},
		},
	},
	{
		Title: "Admin Tools",
		Items: []MenuItem{
			{Title: "Audit Logs"},
			{Title: "Backup Manager"},
			{Title: "Security Reports"},
		},
	},
}

// FilterMenu returns the groups whose items contain query in their title,
// case-insensitively. Groups left without items are dropped; an empty query
// returns the whole menu.
func FilterMenu(query string) []MenuGroup {
	q := strings.TrimSpace(query)

	out := make([]MenuGroup, 0, len(menuGroups))
	for _, g := range menuGroups {
		items := make([]MenuItem, 0, len(g.Items))
		for _, it := range g.Items {
			if common.ContainsFold(it.Title, q) {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			out = append(out, MenuGroup{Title: g.Title, Items: items})
		}
	}
	return out
}

// Menu prints the navigation menu filtered by query. The Super Admins entry
// carries the current record count.
func (a *App) Menu(ctx context.Context, query string) error {
	groups := FilterMenu(query)
	if len(groups) == 0 {
		fmt.Fprintf(a.out, "No results found for %q\n", query)
		return nil
	}

	count := len(a.store.GetSuperAdmins(ctx))
	for _, g := range groups {
		fmt.Fprintln(a.out, g.Title)
		for _, it := range g.Items {
			line := "  " + it.Title
			if it.Path == ViewSuperAdminsPath && count > 0 {
				line += fmt.Sprintf(" (%d)", count)
			}
			if it.Path != "" {
				line += "  -> open " + it.Path
			}
			fmt.Fprintln(a.out, line)
		}
	}
	return nil
}
