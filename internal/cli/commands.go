package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dating-admin/pkg/adminclient"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type listOptions struct {
	page   int
	limit  int
	sort   string
	order  string
	search string
	status string
	json   bool
}

func (o *listOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.page, "page", 1, "page number")
	f.IntVar(&o.limit, "limit", 0, "page size (default from config)")
	f.StringVar(&o.sort, "sort", "", "sort field")
	f.StringVar(&o.order, "order", string(models.SortDesc), "sort order (asc or desc)")
	f.StringVar(&o.search, "search", "", "free-text search")
	f.StringVar(&o.status, "status", "", "status filter")
	f.BoolVar(&o.json, "json", false, "output as JSON")
}

func (o *listOptions) state(res adminclient.Resource, defaultLimit int) (adminclient.FilterState, error) {
	state := adminclient.FilterState{
		Page:         max(1, o.page),
		PageSize:     defaultLimit,
		SortField:    res.Rules.DefaultSort,
		SortOrder:    models.SortOrder(o.order),
		SearchText:   strings.TrimSpace(o.search),
		StatusFilter: o.status,
	}
	if o.limit > 0 {
		state.PageSize = o.limit
	}
	if o.sort != "" {
		if !res.Rules.AllowsSort(o.sort) {
			return state, fmt.Errorf("unknown sort field %q (valid: %s): %w", o.sort, strings.Join(res.SortFields(), ", "), adminclient.ErrInvalidFilter)
		}
		state.SortField = o.sort
	}
	if !state.SortOrder.Valid() {
		return state, fmt.Errorf("unknown sort order %q: %w", o.order, adminclient.ErrInvalidFilter)
	}
	if !res.Rules.AllowsStatus(o.status) {
		return state, fmt.Errorf("unknown status %q (valid: %s): %w", o.status, strings.Join(res.Rules.Statuses, ", "), adminclient.ErrInvalidFilter)
	}
	return state, nil
}

func listCmd[T any](a *app, res adminclient.Resource, t table[T]) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %s", res.Name),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.state(res, a.cfg.List.PageSize)
			if err != nil {
				return err
			}
			page, err := t.fetch(a.client)(cmd.Context(), state)
			if err != nil {
				return err
			}
			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(page.Items)
			}
			return renderPage(a.printer, t, page, nil)
		},
	}
	opts.bind(cmd)
	return cmd
}

// runBulk applique action aux ids et affiche la synthèse
func runBulk[T any](cmd *cobra.Command, a *app, action adminclient.BulkAction[T], ids []string) error {
	report := adminclient.Apply(cmd.Context(), action, ids)
	msg, ok := report.Summary()
	if ok {
		a.printer.Success("%s", msg)
		return nil
	}
	a.printer.Error("%s", msg)
	return errReported
}

func bulkCmd[T any](a *app, use, short string, build func() (adminclient.BulkAction[T], error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := build()
			if err != nil {
				return err
			}
			return runBulk(cmd, a, action, args)
		},
	}
}

func (a *app) userAction(action adminclient.Action, params *adminclient.BulkParams) func() (adminclient.BulkAction[models.User], error) {
	return func() (adminclient.BulkAction[models.User], error) {
		return adminclient.UserAction(a.client, action, *params)
	}
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage members"}

	verify := &adminclient.BulkParams{Verified: true}
	unverify := &adminclient.BulkParams{Verified: false}
	ban := &adminclient.BulkParams{Banned: true}
	unban := &adminclient.BulkParams{Banned: false}
	premium := &adminclient.BulkParams{}

	banCmd := bulkCmd(a, "ban", "Ban members", a.userAction(adminclient.ActionBan, ban))
	banCmd.Flags().StringVar(&ban.Reason, "reason", "", "ban reason")

	var until string
	var off bool
	premiumCmd := bulkCmd(a, "premium", "Grant or revoke premium", func() (adminclient.BulkAction[models.User], error) {
		premium.Premium = !off
		premium.Until = nil
		if until != "" && !off {
			t, err := parseDate(until)
			if err != nil {
				return adminclient.BulkAction[models.User]{}, err
			}
			premium.Until = &t
		}
		return adminclient.UserAction(a.client, adminclient.ActionSetPremium, *premium)
	})
	premiumCmd.Flags().StringVar(&until, "until", "", "premium end date (2006-01-02 or RFC3339)")
	premiumCmd.Flags().BoolVar(&off, "off", false, "revoke premium")

	cmd.AddCommand(
		listCmd(a, adminclient.Users, userTable),
		bulkCmd(a, "verify", "Mark members as verified", a.userAction(adminclient.ActionVerify, verify)),
		bulkCmd(a, "unverify", "Remove verification", a.userAction(adminclient.ActionVerify, unverify)),
		banCmd,
		bulkCmd(a, "unban", "Lift bans", a.userAction(adminclient.ActionBan, unban)),
		premiumCmd,
		bulkCmd(a, "delete", "Delete members and their photos", a.userAction(adminclient.ActionDelete, &adminclient.BulkParams{})),
	)
	return cmd
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected 2006-01-02 or RFC3339", s)
	}
	return t, nil
}

func reportsCmd[T any](a *app, res adminclient.Resource, t table[T], short string) *cobra.Command {
	use := res.Name
	var aliases []string
	if res.Name == adminclient.SafetyReports.Name {
		use, aliases = "safety", []string{res.Name}
	}
	cmd := &cobra.Command{Use: use, Aliases: aliases, Short: short}

	var note string
	statusCmd := &cobra.Command{
		Use:   "status <status> <id>...",
		Short: "Change report status",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := adminclient.ReportAction[T](a.client, res, adminclient.ActionSetStatus, adminclient.BulkParams{
				Status: models.ReportStatus(args[0]),
				Note:   note,
			})
			if err != nil {
				return err
			}
			return runBulk(cmd, a, action, args[1:])
		},
	}
	statusCmd.Flags().StringVar(&note, "note", "", "admin note")

	cmd.AddCommand(
		listCmd(a, res, t),
		statusCmd,
		bulkCmd(a, "delete", "Delete reports", func() (adminclient.BulkAction[T], error) {
			return adminclient.ReportAction[T](a.client, res, adminclient.ActionDelete, adminclient.BulkParams{})
		}),
	)
	return cmd
}

func (a *app) blindatesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "blindates", Short: "Manage blind dates"}

	var notes string
	statusCmd := &cobra.Command{
		Use:   "status <status> <id>...",
		Short: "Change blind date status",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := args[0]
			if !adminclient.Blindates.Rules.AllowsStatus(status) {
				return fmt.Errorf("unknown status %q: %w", status, adminclient.ErrInvalidFilter)
			}
			return runBulk(cmd, a, adminclient.BulkAction[models.Blindate]{
				Name: adminclient.ActionSetStatus,
				Run: func(ctx context.Context, id string) (*models.Blindate, error) {
					return a.client.UpdateBlindateStatus(ctx, id, models.BlindateStatus(status), notes)
				},
			}, args[1:])
		},
	}
	statusCmd.Flags().StringVar(&notes, "notes", "", "operator notes")

	cmd.AddCommand(
		listCmd(a, adminclient.Blindates, blindateTable),
		statusCmd,
		bulkCmd(a, "delete", "Delete blind dates", func() (adminclient.BulkAction[models.Blindate], error) {
			return adminclient.DeleteAction[models.Blindate](a.client, adminclient.Blindates), nil
		}),
	)
	return cmd
}

func (a *app) matchesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "matches", Short: "Manage matches"}
	cmd.AddCommand(
		listCmd(a, adminclient.Matches, matchTable),
		bulkCmd(a, "unmatch", "Dissolve matches", func() (adminclient.BulkAction[models.Match], error) {
			return adminclient.BulkAction[models.Match]{Name: "unmatch", Run: a.client.Unmatch}, nil
		}),
		bulkCmd(a, "delete", "Delete matches", func() (adminclient.BulkAction[models.Match], error) {
			return adminclient.DeleteAction[models.Match](a.client, adminclient.Matches), nil
		}),
	)
	return cmd
}

func (a *app) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notifications", Aliases: []string{"notifs"}, Short: "Manage notifications"}

	var req models.SendNotificationRequest
	var userID, kind string
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send a notification to one member or to everyone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.UserID = nil
			if userID != "" {
				id, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid user id %q: %w", userID, err)
				}
				req.UserID = &id
			}
			req.Type = models.NotificationType(kind)
			sent, err := a.client.SendNotification(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printer.Success("%d notification(s) sent", sent)
			return nil
		},
	}
	f := sendCmd.Flags()
	f.StringVar(&userID, "user", "", "recipient member id")
	f.BoolVar(&req.Broadcast, "broadcast", false, "send to every member who is not banned")
	f.StringVar(&kind, "type", string(models.NotificationSystem), "notification type")
	f.StringVar(&req.Title, "title", "", "title")
	f.StringVar(&req.Content, "content", "", "content")
	_ = sendCmd.MarkFlagRequired("title")
	_ = sendCmd.MarkFlagRequired("content")

	cmd.AddCommand(
		listCmd(a, adminclient.Notifications, notificationTable),
		sendCmd,
		bulkCmd(a, "read", "Mark notifications as read", func() (adminclient.BulkAction[adminclient.Notification], error) {
			return adminclient.MarkReadAction(a.client), nil
		}),
		bulkCmd(a, "delete", "Delete notifications", func() (adminclient.BulkAction[adminclient.Notification], error) {
			return adminclient.DeleteAction[adminclient.Notification](a.client, adminclient.Notifications), nil
		}),
	)
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.client.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Header("Dashboard")
			rows := [][]string{
				{"Members", fmt.Sprint(s.Users)},
				{"Verified", fmt.Sprint(s.VerifiedUsers)},
				{"Banned", fmt.Sprint(s.BannedUsers)},
				{"Premium", fmt.Sprint(s.PremiumUsers)},
				{"Matches", fmt.Sprint(s.Matches)},
				{"Active matches", fmt.Sprint(s.ActiveMatches)},
				{"Blind dates", fmt.Sprint(s.Blindates)},
				{"Upcoming blind dates", fmt.Sprint(s.UpcomingBlindates)},
				{"Pending reports", fmt.Sprint(s.PendingReports)},
				{"Open safety reports", fmt.Sprint(s.OpenSafetyReports)},
				{"Unread notifications", fmt.Sprint(s.UnreadNotifications)},
			}
			return renderTable(a.printer.out, []string{"METRIC", "VALUE"}, rows)
		},
	}
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			resp, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := SaveToken(a.cfg, resp.Token); err != nil {
				return err
			}
			a.printer.Success("Logged in as %s, token saved to %s", resp.Admin.Email, a.cfg.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringVar(&password, "password", "", "operator password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
