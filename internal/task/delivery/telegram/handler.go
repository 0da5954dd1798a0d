package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/timeline"
	pkgLog "task-planner/pkg/log"
	pkgResponse "task-planner/pkg/response"
	pkgTelegram "task-planner/pkg/telegram"
)

const (
	processTimeout = 30 * time.Second
	clockLayout    = "15:04"
	dayLayout      = "Mon 2 Jan"
)

const helpText = "*How to use*\n\n" +
	"Send a task in plain words and I will schedule it:\n" +
	"`Dentist tomorrow at 3:30pm`\n" +
	"`Standup every weekday 10am`\n" +
	"`Buy milk`\n\n" +
	"/today shows today's timeline\n" +
	"/overdue lists what is late\n" +
	"/preview <text> shows how I read a task without saving it\n" +
	"/done <id> completes a task"

type handler struct {
	l       pkgLog.Logger
	uc      task.UseCase
	bot     Sender
	loc     *time.Location
	allowed map[int64]struct{}
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers 200 at once and processes the message in the background, since
// Telegram retries updates that are not acknowledged quickly.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.ValidationError(c, err)
		return
	}

	// Ignore non-message updates (edits, channel posts, ...)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	go func() {
		// Detach from the request context, which ends with the response.
		bgCtx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	chatID := msg.Chat.ID

	if !h.isAllowed(chatID) {
		h.l.Warnf(ctx, "telegram handler: chat %d is not allowed", chatID)
		return nil
	}

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start", "/help":
		return h.bot.SendMessageWithMode(ctx, chatID, helpText, "Markdown")
	case "/today":
		return h.sendToday(ctx, chatID)
	case "/overdue":
		return h.sendOverdue(ctx, chatID)
	case "/preview":
		return h.sendPreview(ctx, chatID, arg)
	case "/done":
		return h.complete(ctx, chatID, arg)
	case "":
		return h.quickAdd(ctx, chatID, text)
	default:
		return h.bot.SendMessage(ctx, chatID, "Unknown command, try /help")
	}
}

func (h *handler) isAllowed(chatID int64) bool {
	if len(h.allowed) == 0 {
		return true
	}
	_, ok := h.allowed[chatID]
	return ok
}

// splitCommand returns the bot command and its argument. Plain text has no command.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, arg, _ := strings.Cut(text, " ")
	// Commands in groups arrive as /today@botname.
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func (h *handler) reportError(ctx context.Context, chatID int64, op string, err error) error {
	h.l.Errorf(ctx, "telegram handler: %s failed: %v", op, err)
	return h.bot.SendMessage(ctx, chatID, errorMessage(err))
}

func (h *handler) quickAdd(ctx context.Context, chatID int64, text string) error {
	out, err := h.uc.CreateFromText(ctx, task.CreateFromTextInput{Text: text})
	if err != nil {
		return h.reportError(ctx, chatID, "CreateFromText", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Added *%s*", pkgTelegram.EscapeMarkdown(out.Task.Title))
	if when := h.describeSchedule(out.Task); when != "" {
		fmt.Fprintf(&b, "\n%s", when)
	}
	if out.Materialized > 0 {
		fmt.Fprintf(&b, "\n%d upcoming occurrences scheduled", out.Materialized)
	}
	fmt.Fprintf(&b, "\n`%s`", out.Task.ID)
	return h.bot.SendMessageWithMode(ctx, chatID, b.String(), "Markdown")
}

func (h *handler) sendPreview(ctx context.Context, chatID int64, text string) error {
	draft, err := h.uc.Preview(ctx, text)
	if err != nil {
		return h.reportError(ctx, chatID, "Preview", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s", draft.Title)
	switch {
	case draft.IsRecurring:
		fmt.Fprintf(&b, "\nRepeats: %s", describeDraftRule(draft))
	case draft.IsFloating:
		b.WriteString("\nNo date, kept in the floating list")
	}
	if draft.ScheduledDate != nil {
		fmt.Fprintf(&b, "\nDate: %s", draft.ScheduledDate.In(h.loc).Format(dayLayout))
	}
	if draft.ScheduledTime != nil {
		fmt.Fprintf(&b, "\nTime: %s", draft.ScheduledTime.In(h.loc).Format(clockLayout))
	}
	return h.bot.SendMessage(ctx, chatID, b.String())
}

func (h *handler) sendToday(ctx context.Context, chatID int64) error {
	out, err := h.uc.Timeline(ctx, task.TimelineInput{})
	if err != nil {
		return h.reportError(ctx, chatID, "Timeline", err)
	}
	if len(out.Items) == 0 && len(out.Floating) == 0 {
		return h.bot.SendMessage(ctx, chatID, "Nothing planned for today.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", out.From.In(h.loc).Format(dayLayout))
	for _, item := range out.Items {
		p := timeline.Project(item)
		mark := ""
		if p.Completed {
			mark = " (done)"
		}
		if p.AllDay {
			fmt.Fprintf(&b, "all day  %s%s\n", pkgTelegram.EscapeMarkdown(p.Title), mark)
			continue
		}
		fmt.Fprintf(&b, "%s-%s  %s%s\n",
			p.Start.In(h.loc).Format(clockLayout), p.End.In(h.loc).Format(clockLayout),
			pkgTelegram.EscapeMarkdown(p.Title), mark)
	}
	if len(out.Floating) > 0 {
		b.WriteString("\n*Anytime*\n")
		for _, t := range out.Floating {
			fmt.Fprintf(&b, "- %s\n", pkgTelegram.EscapeMarkdown(t.Title))
		}
	}
	return h.bot.SendMessageWithMode(ctx, chatID, b.String(), "Markdown")
}

func (h *handler) sendOverdue(ctx context.Context, chatID int64) error {
	tasks, err := h.uc.Overdue(ctx)
	if err != nil {
		return h.reportError(ctx, chatID, "Overdue", err)
	}
	if len(tasks) == 0 {
		return h.bot.SendMessage(ctx, chatID, "Nothing is overdue.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d overdue:\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s, %s (%s)\n", t.Title, h.describeSchedule(t), t.ID)
	}
	return h.bot.SendMessage(ctx, chatID, b.String())
}

func (h *handler) complete(ctx context.Context, chatID int64, id string) error {
	if id == "" {
		return h.bot.SendMessage(ctx, chatID, "Usage: /done <task id>")
	}
	t, err := h.uc.Complete(ctx, id)
	if err != nil {
		return h.reportError(ctx, chatID, "Complete", err)
	}
	return h.bot.SendMessage(ctx, chatID, fmt.Sprintf("Done: %s", t.Title))
}

// describeSchedule renders when a task happens, or "" for floating tasks.
func (h *handler) describeSchedule(t model.Task) string {
	if t.IsTemplate() {
		return "repeats " + describeRule(*t.Rule)
	}
	switch {
	case t.ScheduledTime != nil:
		return t.ScheduledTime.In(h.loc).Format(dayLayout + " " + clockLayout)
	case t.ScheduledDate != nil:
		return t.ScheduledDate.In(h.loc).Format(dayLayout)
	}
	return ""
}

func describeRule(r model.RecurrenceRule) string {
	return describeFrequency(r.Frequency, r.Step(), r.DaysOfWeek, r.DayOfMonth)
}

func describeDraftRule(d model.ParsedDraft) string {
	interval := d.Interval
	if interval < 1 {
		interval = 1
	}
	return describeFrequency(d.Frequency, interval, d.DaysOfWeek, d.DayOfMonth)
}

func describeFrequency(freq model.Frequency, interval int, days []model.Weekday, dom *int) string {
	unit := map[model.Frequency]string{
		model.FrequencyDaily:          "day",
		model.FrequencyCustomInterval: "day",
		model.FrequencyWeekly:         "week",
		model.FrequencyMonthly:        "month",
		model.FrequencyYearly:         "year",
	}[freq]
	if unit == "" {
		return string(freq)
	}

	s := "every " + unit
	if interval > 1 {
		s = fmt.Sprintf("every %d %ss", interval, unit)
	}
	if freq == model.FrequencyWeekly && len(days) > 0 {
		names := make([]string, len(days))
		for i, d := range days {
			names[i] = d.String()[:3]
		}
		s += " on " + strings.Join(names, ", ")
	}
	if freq == model.FrequencyMonthly && dom != nil {
		s += fmt.Sprintf(" on day %d", *dom)
	}
	return s
}
