package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"civicpulse/internal/ai"
	"civicpulse/internal/dto"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/store"
)

var errInvalidCredentials = errors.New("invalid credentials for selected role")

func parseRole(s string) (lifecycle.Role, error) {
	r := lifecycle.Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (want CITIZEN, OFFICER or ADMIN)", s)
	}
	return r, nil
}

func parseStatus(s string) (lifecycle.Status, error) {
	st := lifecycle.Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

func parsePriority(s string) (lifecycle.Priority, error) {
	p := lifecycle.Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printGrievances(w io.Writer, list []dto.Grievance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tCATEGORY\tSUBMITTED\tTITLE")
	for _, g := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Status, g.Priority, g.Category, g.SubmittedAt.Format(time.DateOnly), g.Title)
	}
	return tw.Flush()
}

func printUsers(w io.Writer, users []dto.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROLE\tEMAIL\tNAME\tDEPARTMENT")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Role, u.Email, u.Name, u.Department)
	}
	return tw.Flush()
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

func newLoginCmd(a *app) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in by email and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRole(role)
			if err != nil {
				return err
			}
			ok, err := a.store.Login(cmd.Context(), email, r)
			if err != nil {
				return err
			}
			if !ok {
				return errInvalidCredentials
			}
			u := a.store.CurrentUser()
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Name, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&role, "role", string(lifecycle.RoleCitizen), "CITIZEN, OFFICER or ADMIN")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRole(role)
			if err != nil {
				return err
			}
			ok, err := a.store.Register(cmd.Context(), name, email, r)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is already registered as %s", email, r)
			}
			u := a.store.CurrentUser()
			fmt.Fprintf(a.out, "Registered %s (%s) with id %s\n", u.Name, u.Role, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&role, "role", string(lifecycle.RoleCitizen), "CITIZEN, OFFICER or ADMIN")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			u := a.store.CurrentUser()
			if u == nil {
				return store.ErrNotAuthenticated
			}
			return printJSON(a.out, u)
		},
	}
}

func newUsersCmd(a *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List known users",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			users := a.store.Users()
			if role != "" {
				r, err := parseRole(role)
				if err != nil {
					return err
				}
				filtered := users[:0]
				for _, u := range users {
					if u.Role == r {
						filtered = append(filtered, u)
					}
				}
				users = filtered
			}
			return printUsers(a.out, users)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Only list users with this role")
	return cmd
}

// ---------------------------------------------------------------------------
// Grievances
// ---------------------------------------------------------------------------

func newSubmitCmd(a *app) *cobra.Command {
	var (
		d        store.Draft
		priority string
		lat, lng float64
		address  string
		auto     bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "File a new grievance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if priority != "" {
				p, err := parsePriority(priority)
				if err != nil {
					return err
				}
				d.Priority = p
			}
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") || address != "" {
				d.Location = &lifecycle.Location{Lat: lat, Lng: lng, Address: address}
			}
			if auto {
				s, err := a.assistant(ctx).Categorize(ctx, d.Description)
				if err != nil {
					return fmt.Errorf("failed to categorize: %w", err)
				}
				if d.Category == "" {
					d.Category = s.Category
				}
				if d.Title == "" {
					d.Title = s.SuggestedTitle
				}
			}

			g, err := a.store.SubmitGrievance(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Submitted %s (%s, due in %dh)\n", g.ID, g.Priority, lifecycle.SLAHours(g.Priority))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Title, "title", "", "Short title")
	f.StringVar(&d.Description, "description", "", "What is wrong and where")
	f.StringVar(&d.Category, "category", "", "One of the grievance categories")
	f.StringVar(&priority, "priority", "", "LOW, MEDIUM, HIGH or URGENT")
	f.Float64Var(&lat, "lat", 0, "Latitude")
	f.Float64Var(&lng, "lng", 0, "Longitude")
	f.StringVar(&address, "address", "", "Street address")
	f.StringVar(&d.Image, "image", "", "Image path or URL returned by upload")
	f.BoolVar(&auto, "auto", false, "Fill category and title with Gemini")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		status  string
		mine    bool
		officer string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List grievances, newest first",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			var want lifecycle.Status
			if status != "" {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				want = st
			}
			var submitter string
			if mine {
				u := a.store.CurrentUser()
				if u == nil {
					return store.ErrNotAuthenticated
				}
				submitter = u.ID
			}

			var out []dto.Grievance
			for _, g := range a.store.Grievances() {
				if want != "" && g.Status != want {
					continue
				}
				if submitter != "" && g.SubmittedBy != submitter {
					continue
				}
				if officer != "" && g.AssignedOfficerID != officer {
					continue
				}
				out = append(out, g)
			}
			if asJSON {
				if out == nil {
					out = []dto.Grievance{}
				}
				return printJSON(a.out, out)
			}
			return printGrievances(a.out, out)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only this status")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only grievances I submitted")
	cmd.Flags().StringVar(&officer, "officer", "", "Only grievances assigned to this officer id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one grievance with its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			g, err := a.store.Grievance(args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, g)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var status, priority, officer, note, resolutionImage, message string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change status, priority, assignment or resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u store.Updates
			f := cmd.Flags()
			if f.Changed("status") {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				u.Status = &st
			}
			if f.Changed("priority") {
				p, err := parsePriority(priority)
				if err != nil {
					return err
				}
				u.Priority = &p
			}
			if f.Changed("assign") {
				u.AssignedOfficerID = &officer
			}
			if f.Changed("note") {
				u.ResolutionNote = &note
			}
			if f.Changed("resolution-image") {
				u.ResolutionImage = &resolutionImage
			}

			g, err := a.store.UpdateGrievance(cmd.Context(), args[0], u, message)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is %s (%s)\n", g.ID, g.Status, g.SLAStatus)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&status, "status", "", "New status")
	f.StringVar(&priority, "priority", "", "New priority")
	f.StringVar(&officer, "assign", "", "Officer id to assign")
	f.StringVar(&note, "note", "", "Resolution note")
	f.StringVar(&resolutionImage, "resolution-image", "", "Proof-of-resolution image")
	f.StringVarP(&message, "message", "m", "", "Timeline message for a status change")
	return cmd
}

func newFeedbackCmd(a *app) *cobra.Command {
	var rating int
	var comment string
	cmd := &cobra.Command{
		Use:   "feedback <id>",
		Short: "Rate a resolved grievance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.store.AddFeedback(cmd.Context(), args[0], rating, comment)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Thanks, %s rated %d/5\n", args[0], f.Rating)
			return nil
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <id> <file>",
		Short: "Attach an image to a grievance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.online()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			contentType := mime.TypeByExtension(filepath.Ext(args[1]))
			if contentType == "" {
				contentType = http.DetectContentType(data)
			}
			res, err := api.UploadImage(cmd.Context(), args[0], filepath.Base(args[1]), contentType, bytes.NewReader(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Uploaded %s as %s\n", args[1], res.Path)
			return a.store.Refresh(cmd.Context())
		},
	}
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Replace local state with the backend's",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.online(); err != nil {
				return err
			}
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d grievances, %d users\n", len(a.store.Grievances()), len(a.store.Users()))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

func newAnalyticsCmd(a *app) *cobra.Command {
	var officer string
	cmd := &cobra.Command{
		Use:       "analytics [summary|complete|zones|sla|heatmap|analysis]",
		Short:     "Show aggregate reports from the backend",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"summary", "complete", "zones", "sla", "heatmap", "analysis"},
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.online()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			report := "summary"
			if len(args) == 1 {
				report = args[0]
			}

			var v any
			switch report {
			case "summary":
				if officer != "" {
					v, err = api.OfficerAnalytics(ctx, officer)
				} else {
					v, err = api.Analytics(ctx)
				}
			case "complete":
				v, err = api.CompleteAnalytics(ctx)
			case "zones":
				v, err = api.ZoneAnalytics(ctx)
			case "sla":
				if officer != "" {
					v, err = api.OfficerSLAMetrics(ctx, officer)
				} else {
					v, err = api.SLAMetrics(ctx)
				}
			case "heatmap":
				v, err = api.HeatMap(ctx)
			case "analysis":
				if officer != "" {
					v, err = api.OfficerGrievanceAnalysis(ctx, officer)
				} else {
					v, err = api.GrievanceAnalysis(ctx)
				}
			}
			if err != nil {
				return err
			}
			return printJSON(a.out, v)
		},
	}
	cmd.Flags().StringVar(&officer, "officer", "", "Scope summary, sla and analysis to one officer id")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <description...>",
		Short: "Suggest a category and title with Gemini",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.assistant(cmd.Context()).Categorize(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(a.out, s)
		},
	}
}

// assistant returns a Gemini-backed assistant, or one that always fails with
// ai.ErrUnavailable when no key is configured.
func (a *app) assistant(ctx context.Context) ai.Assistant {
	if a.cfg.Gemini.APIKey == "" {
		return ai.Noop{}
	}
	gen, err := ai.NewGemini(ctx, a.cfg.Gemini.APIKey, a.cfg.Gemini.Model)
	if err != nil {
		logger.Get().Warnw("Gemini unavailable", "error", err)
		return ai.Noop{}
	}
	return ai.NewService(gen)
}
