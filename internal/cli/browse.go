package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dating-admin/pkg/adminclient"
	"dating-admin/pkg/models"

	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  /text      search (empty "/" clears)
  n, p       next / previous page
  g <n>      go to page n
  s <field>  sort by field, again to flip order
  f <status> filter by status ("f" alone clears)
  x <row>    toggle selection of a row
  a <action> apply an action to the selected rows:
               users: verify, unverify, ban [reason], unban,
                      premium [until], unpremium, delete
               blindates: status <status> [notes], delete
               matches: unmatch, delete
               reports, safety: status <status> [note], delete
               notifications: read, delete
  r          refresh
  q          quit`

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <resource>",
		Short: "Browse a resource interactively",
		Long: `Browse a resource page by page, reading commands from stdin.

` + browseHelp,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"users", "blindates", "matches", "reports", "safety", "notifications"},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := adminclient.LookupResource(args[0])
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			switch res.Name {
			case adminclient.Users.Name:
				return browse(cmd.Context(), a, res, userTable, in)
			case adminclient.Blindates.Name:
				return browse(cmd.Context(), a, res, blindateTable, in)
			case adminclient.Matches.Name:
				return browse(cmd.Context(), a, res, matchTable, in)
			case adminclient.Reports.Name:
				return browse(cmd.Context(), a, res, reportTable, in)
			case adminclient.SafetyReports.Name:
				return browse(cmd.Context(), a, res, safetyTable, in)
			default:
				return browse(cmd.Context(), a, res, notificationTable, in)
			}
		},
	}
}

func browse[T any](ctx context.Context, a *app, res adminclient.Resource, t table[T], in io.Reader) error {
	sink := &adminclient.RecorderSink{}
	view := adminclient.NewListView(ctx, res, t.fetch(a.client), t.id, adminclient.ListViewOptions{
		PageSize: a.cfg.List.PageSize,
		Debounce: a.cfg.List.Debounce,
		Sink:     sink,
	})
	defer view.Close()

	render := func() error {
		state := view.Filters().State()
		a.printer.Header(fmt.Sprintf("%s  sort=%s %s  search=%q  status=%q",
			res.Name, state.SortField, state.SortOrder, state.SearchText, state.StatusFilter))
		return renderPage(a.printer, t, view.Page(), view.Selection())
	}

	view.Load()
	view.Wait()
	printMessages(a.printer, sink)
	if err := render(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.printer.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.printer.out)
			return scanner.Err()
		}

		act := func(name, arg string) (adminclient.BulkAction[T], error) {
			return t.actions(a.client, name, arg)
		}
		quit, redraw := browseStep(ctx, a.printer, view, act, strings.TrimSpace(scanner.Text()))
		if quit {
			return nil
		}
		view.Wait()
		printMessages(a.printer, sink)
		if redraw {
			if err := render(); err != nil {
				return err
			}
		}
	}
}

type actionBuilder[T any] func(name, arg string) (adminclient.BulkAction[T], error)

// browseStep applique une commande; retourne (quitter, réafficher)
func browseStep[T any](ctx context.Context, p *Printer, view *adminclient.ListView[T], act actionBuilder[T], line string) (bool, bool) {
	filters := view.Filters()
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case line == "":
		return false, false
	case strings.HasPrefix(line, "/"):
		filters.SetSearchText(strings.TrimSpace(line[1:]))
		filters.FlushSearch()
	case verb == "q" || verb == "quit":
		return true, false
	case verb == "?" || verb == "help":
		p.Print("%s", browseHelp)
		return false, false
	case verb == "n":
		if !filters.SetPage(filters.State().Page + 1) {
			p.Warning("already on the last page")
			return false, false
		}
	case verb == "p":
		if !filters.SetPage(filters.State().Page - 1) {
			p.Warning("already on the first page")
			return false, false
		}
	case verb == "g":
		n, err := strconv.Atoi(arg)
		if err != nil || !filters.SetPage(n) {
			p.Warning("page must be between 1 and %d", max(1, filters.PageCount()))
			return false, false
		}
	case verb == "s":
		if filters.SetSortField(arg) != nil {
			return false, false
		}
	case verb == "f":
		if filters.SetStatusFilter(arg) != nil {
			return false, false
		}
	case verb == "x":
		items := view.Items()
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(items) {
			p.Warning("row must be between 1 and %d", len(items))
			return false, false
		}
		view.Selection().Toggle(view.ID(items[n-1]))
	case verb == "a":
		if view.Selection().Len() == 0 {
			p.Warning("no rows selected, use x <row> first")
			return false, false
		}
		name, rest, _ := strings.Cut(arg, " ")
		action, err := act(name, strings.TrimSpace(rest))
		if err != nil {
			p.Error("%v", err)
			return false, false
		}
		view.ApplyBulk(ctx, action)
	case verb == "r":
		filters.Refresh()
	default:
		p.Warning("unknown command %q, type ? for help", line)
		return false, false
	}
	return false, true
}

func userActions(c *adminclient.Client, name, arg string) (adminclient.BulkAction[models.User], error) {
	switch name {
	case "verify", "unverify":
		return adminclient.UserAction(c, adminclient.ActionVerify, adminclient.BulkParams{Verified: name == "verify"})
	case "ban":
		return adminclient.UserAction(c, adminclient.ActionBan, adminclient.BulkParams{Banned: true, Reason: arg})
	case "unban":
		return adminclient.UserAction(c, adminclient.ActionBan, adminclient.BulkParams{})
	case "premium":
		params := adminclient.BulkParams{Premium: true}
		if arg != "" {
			until, err := parseDate(arg)
			if err != nil {
				return adminclient.BulkAction[models.User]{}, err
			}
			params.Until = &until
		}
		return adminclient.UserAction(c, adminclient.ActionSetPremium, params)
	case "unpremium":
		return adminclient.UserAction(c, adminclient.ActionSetPremium, adminclient.BulkParams{})
	case "delete":
		return adminclient.UserAction(c, adminclient.ActionDelete, adminclient.BulkParams{})
	}
	return adminclient.BulkAction[models.User]{}, fmt.Errorf("%w %q for users", adminclient.ErrUnknownAction, name)
}

func blindateActions(c *adminclient.Client, name, arg string) (adminclient.BulkAction[models.Blindate], error) {
	switch name {
	case "status":
		status, notes, _ := strings.Cut(arg, " ")
		if status == "" || !adminclient.Blindates.Rules.AllowsStatus(status) {
			return adminclient.BulkAction[models.Blindate]{}, fmt.Errorf("unknown status %q: %w", status, adminclient.ErrInvalidFilter)
		}
		return adminclient.BulkAction[models.Blindate]{
			Name: adminclient.ActionSetStatus,
			Run: func(ctx context.Context, id string) (*models.Blindate, error) {
				return c.UpdateBlindateStatus(ctx, id, models.BlindateStatus(status), strings.TrimSpace(notes))
			},
		}, nil
	case "delete":
		return adminclient.DeleteAction[models.Blindate](c, adminclient.Blindates), nil
	}
	return adminclient.BulkAction[models.Blindate]{}, fmt.Errorf("%w %q for blindates", adminclient.ErrUnknownAction, name)
}

func matchActions(c *adminclient.Client, name, _ string) (adminclient.BulkAction[models.Match], error) {
	switch name {
	case "unmatch":
		return adminclient.BulkAction[models.Match]{Name: "unmatch", Run: c.Unmatch}, nil
	case "delete":
		return adminclient.DeleteAction[models.Match](c, adminclient.Matches), nil
	}
	return adminclient.BulkAction[models.Match]{}, fmt.Errorf("%w %q for matches", adminclient.ErrUnknownAction, name)
}

func reportActions[T any](res adminclient.Resource) func(c *adminclient.Client, name, arg string) (adminclient.BulkAction[T], error) {
	return func(c *adminclient.Client, name, arg string) (adminclient.BulkAction[T], error) {
		switch name {
		case "status":
			status, note, _ := strings.Cut(arg, " ")
			return adminclient.ReportAction[T](c, res, adminclient.ActionSetStatus, adminclient.BulkParams{
				Status: models.ReportStatus(status),
				Note:   strings.TrimSpace(note),
			})
		case "delete":
			return adminclient.ReportAction[T](c, res, adminclient.ActionDelete, adminclient.BulkParams{})
		}
		return adminclient.BulkAction[T]{}, fmt.Errorf("%w %q for %s", adminclient.ErrUnknownAction, name, res.Name)
	}
}

func notificationActions(c *adminclient.Client, name, _ string) (adminclient.BulkAction[adminclient.Notification], error) {
	switch name {
	case "read":
		return adminclient.MarkReadAction(c), nil
	case "delete":
		return adminclient.DeleteAction[adminclient.Notification](c, adminclient.Notifications), nil
	}
	return adminclient.BulkAction[adminclient.Notification]{}, fmt.Errorf("%w %q for notifications", adminclient.ErrUnknownAction, name)
}
