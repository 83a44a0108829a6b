package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

var (
	reviewYear  int
	reviewMonth int
	reviewLimit int
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	warningText = color.New(color.FgYellow).SprintFunc()
	errorText   = color.New(color.FgRed, color.Bold).SprintFunc()
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review user-submitted jobs and courses",
	Long: `Works the submission queue kept in Google Sheets. Accepting a row
marks it in the Status column, emails the submitter and copies the row to
the public destination sheet. Rejecting marks it and emails the submitter.`,
}

var reviewListCmd = &cobra.Command{
	Use:   "list <jobs|courses>",
	Short: "List the submissions of one month",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewList,
}

var reviewAcceptCmd = &cobra.Command{
	Use:   "accept <jobs|courses> <row>...",
	Short: "Accept submissions by sheet row number",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReviewDecide(cmd, args, domain.StatusAccepted)
	},
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject <jobs|courses> <row>...",
	Short: "Reject submissions by sheet row number",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReviewDecide(cmd, args, domain.StatusRejected)
	},
}

var reviewApplyCmd = &cobra.Command{
	Use:   "apply <jobs|courses> <row>=<accept|reject>...",
	Short: "Apply a batch of decisions",
	Long: `Applies decisions in ascending row order. A failing row is reported
and the batch continues.`,
	Example: `  tristep review apply courses 4=accept 7=reject 9=accept`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runReviewApply,
}

var reviewLogCmd = &cobra.Command{
	Use:   "log [jobs|courses]",
	Short: "Show recorded review outcomes, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReviewLog,
}

func init() {
	now := time.Now()
	reviewListCmd.Flags().IntVar(&reviewYear, "year", now.Year(), "submission year")
	reviewListCmd.Flags().IntVar(&reviewMonth, "month", int(now.Month()), "submission month (1-12)")
	reviewLogCmd.Flags().IntVarP(&reviewLimit, "limit", "n", 20, "maximum entries to show (0 = all)")

	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewAcceptCmd)
	reviewCmd.AddCommand(reviewRejectCmd)
	reviewCmd.AddCommand(reviewApplyCmd)
	reviewCmd.AddCommand(reviewLogCmd)
	rootCmd.AddCommand(reviewCmd)
}

func parseKindArg(arg string) (domain.CorpusKind, error) {
	kind, err := domain.ParseCorpusKind(arg)
	if err != nil {
		return "", fmt.Errorf("unknown submission type %q: expected jobs or courses", arg)
	}
	return kind, nil
}

func parseRow(arg string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || row < 2 {
		return 0, fmt.Errorf("invalid row %q: rows start at 2", arg)
	}
	return row, nil
}

func runReviewList(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	if reviewMonth < 1 || reviewMonth > 12 {
		return fmt.Errorf("invalid month %d", reviewMonth)
	}
	period := domain.ReviewPeriod{Year: reviewYear, Month: time.Month(reviewMonth)}

	sheet, err := reviewService.List(cmd.Context(), kind, period)
	if err != nil {
		return fmt.Errorf("list %s submissions: %w", kind, err)
	}

	cmd.Printf("%s submissions for %s\n", strings.ToUpper(kind.EntityType()[:1])+kind.EntityType()[1:], sheet.Period)
	if len(sheet.Years) > 0 {
		years := make([]string, len(sheet.Years))
		for i, y := range sheet.Years {
			years[i] = strconv.Itoa(y)
		}
		cmd.Printf("Years with submissions: %s\n", strings.Join(years, ", "))
	}
	cmd.Println()

	if len(sheet.Rows) == 0 {
		cmd.Println("No submissions in this period.")
		return nil
	}

	for _, row := range sheet.Rows {
		contact := row.Contact()
		cmd.Printf("  Row %-4d %-9s %s  %s\n", row.Number, statusLabel(row.Status),
			row.Timestamp.Format("2006-01-02 15:04"), orUnknown(contact.Title))
		cmd.Printf("           %s <%s>\n", orUnknown(contact.FullName), orUnknown(contact.Email))
	}

	if sheet.Dropped > 0 {
		cmd.Printf("\n%s\n", warningText(fmt.Sprintf("%d rows without a readable timestamp were skipped", sheet.Dropped)))
	}
	if len(sheet.EmptyColumns) > 0 {
		cmd.Printf("Empty columns: %s\n", strings.Join(sheet.EmptyColumns, ", "))
	}
	return nil
}

func runReviewDecide(cmd *cobra.Command, args []string, status domain.ReviewStatus) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	decisions := make([]domain.Decision, 0, len(args)-1)
	for _, arg := range args[1:] {
		row, err := parseRow(arg)
		if err != nil {
			return err
		}
		decisions = append(decisions, domain.Decision{Row: row, Status: status})
	}

	if len(decisions) == 1 {
		outcome, err := reviewService.Decide(cmd.Context(), kind, decisions[0].Row, status)
		if err != nil {
			return fmt.Errorf("row %d: %w", decisions[0].Row, err)
		}
		printOutcome(cmd, outcome)
		return outcomeError([]domain.ReviewOutcome{*outcome})
	}

	outcomes, err := reviewService.Apply(cmd.Context(), kind, decisions)
	if err != nil {
		return fmt.Errorf("apply decisions: %w", err)
	}
	for i := range outcomes {
		printOutcome(cmd, &outcomes[i])
	}
	return outcomeError(outcomes)
}

func runReviewApply(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	decisions := make([]domain.Decision, 0, len(args)-1)
	for _, arg := range args[1:] {
		rowPart, statusPart, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid decision %q: expected <row>=<accept|reject>", arg)
		}
		row, err := parseRow(rowPart)
		if err != nil {
			return err
		}
		status, err := domain.ParseReviewStatus(statusPart)
		if err != nil || status == domain.StatusPending {
			return fmt.Errorf("invalid decision %q: status must be accept or reject", arg)
		}
		decisions = append(decisions, domain.Decision{Row: row, Status: status})
	}

	outcomes, err := reviewService.Apply(cmd.Context(), kind, decisions)
	if err != nil {
		return fmt.Errorf("apply decisions: %w", err)
	}
	for i := range outcomes {
		printOutcome(cmd, &outcomes[i])
	}
	return outcomeError(outcomes)
}

func runReviewLog(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	var kind domain.CorpusKind
	if len(args) == 1 {
		k, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		kind = k
	}

	outcomes, err := reviewService.Log(cmd.Context(), kind, reviewLimit)
	if err != nil {
		return fmt.Errorf("review log: %w", err)
	}
	if len(outcomes) == 0 {
		cmd.Println("No review decisions recorded.")
		return nil
	}

	for _, o := range outcomes {
		result := successText("ok")
		if o.Failed() {
			result = errorText(fmt.Sprintf("%d errors", len(o.Errors)))
		}
		cmd.Printf("%s  %-7s row %-4d %-9s email:%-7s %s\n",
			o.DecidedAt.Format("2006-01-02 15:04"), o.Kind, o.Row, o.Status.Description(), o.Email, result)
	}
	return nil
}

// printOutcome reports each side effect of one decision.
func printOutcome(cmd *cobra.Command, o *domain.ReviewOutcome) {
	header := fmt.Sprintf("Row %d: %s", o.Row, o.Status.Description())
	if o.Failed() {
		cmd.Println(errorText(header))
	} else {
		cmd.Println(successText(header))
	}

	if o.StatusUpdated {
		cmd.Printf("  %s\n", successText("status updated"))
	}
	switch o.Email {
	case domain.EmailSent:
		cmd.Printf("  %s\n", successText("notification sent to "+o.Recipient))
	case domain.EmailSkipped:
		cmd.Printf("  %s\n", warningText("notification skipped"))
	case domain.EmailFailed:
		cmd.Printf("  %s\n", errorText("notification failed"))
	case domain.EmailNone:
	}
	if o.Appended {
		cmd.Printf("  %s\n", successText("copied to destination sheet"))
	}
	for _, w := range o.Warnings {
		cmd.Printf("  %s\n", warningText("warning: "+w))
	}
	for _, e := range o.Errors {
		cmd.Printf("  %s\n", errorText("error: "+e))
	}
}

// outcomeError returns a summary error when any outcome failed so the
// command exits non-zero.
func outcomeError(outcomes []domain.ReviewOutcome) error {
	failed := 0
	for i := range outcomes {
		if outcomes[i].Failed() {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d decisions had errors", failed, len(outcomes))
}

func statusLabel(s domain.ReviewStatus) string {
	switch s {
	case domain.StatusAccepted:
		return successText(s.Description())
	case domain.StatusRejected:
		return errorText(s.Description())
	default:
		return warningText(s.Description())
	}
}

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownValue
	}
	return s
}
