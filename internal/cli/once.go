package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/monitor"
	"github.com/rileyhilliard/botstat/internal/ui"
)

// onceReport is the --json payload of 'botstat once'.
type onceReport struct {
	SessionID string                `json:"session_id"`
	Endpoint  string                `json:"endpoint"`
	Display   *monitor.DisplayModel `json:"display"`
}

var reportGroups = []string{monitor.GroupSystem, monitor.GroupMemory, monitor.GroupCPU, monitor.GroupNetwork}

// runOnce performs a single poll and prints it to w. Styling is only
// applied when styled is set; piped output stays plain.
func runOnce(ctx context.Context, w io.Writer, poller *monitor.Poller, styled bool) error {
	session := poller.Session()

	var progress *ui.Spinner
	if styled && !machineMode {
		progress = ui.NewSpinner(w, "Fetching stats from "+session.Endpoint)
		progress.Start()
	}

	res := poller.PollOnce(ctx)
	if progress != nil {
		if res.Err != nil {
			progress.Fail("Couldn't fetch stats from " + session.Endpoint)
		} else {
			progress.Success(fmt.Sprintf("Fetched stats from %s (poll #%d)", session.Endpoint, res.Seq))
		}
	}

	if res.Err != nil {
		return errors.WrapWithCode(res.Err, errors.ErrFetch,
			"Couldn't fetch stats from "+session.Endpoint,
			"Check the endpoint and path, or run with --endpoint http://host:port")
	}

	if machineMode {
		return WriteJSONSuccess(w, onceReport{
			SessionID: session.ID,
			Endpoint:  session.Endpoint,
			Display:   res.Display,
		})
	}

	if !styled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	_, err := io.WriteString(w, renderReport(res.Display))
	return err
}

// renderReport formats a display model as a plain report, grouped like the dashboard.
func renderReport(d *monitor.DisplayModel) string {
	var b strings.Builder

	for _, group := range reportGroups {
		var lines []string
		for _, spec := range monitor.SystemFields {
			if spec.Group != group {
				continue
			}
			f, ok := d.Get(spec.Key)
			if !ok {
				continue
			}
			lines = append(lines, reportLine(spec.Label, reportValue(spec, f)))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(monitor.BotNameStyle.Render(group))
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")
	}

	if len(d.Workers) == 0 {
		b.WriteString(monitor.LabelStyle.Render("No bots reported"))
		b.WriteString("\n")
		return b.String()
	}

	for _, w := range d.Workers {
		state := "idle"
		if w.Active {
			state = "active"
		}
		b.WriteString(monitor.BotNameStyle.Render(fmt.Sprintf("Bot #%d", w.Index+1)))
		b.WriteString(fmt.Sprintf("  @%s (%s) %s\n", w.Username, w.ID, state))
		b.WriteString(reportLine("Uptime", w.Uptime) + "\n")
		b.WriteString(reportLine("Active requests", w.ActiveRequests) + "\n")
		b.WriteString(reportLine("Requests/s", w.RequestRate) + "\n")
		b.WriteString(reportLine("Updates/s", w.UpdateRate) + "\n")
		b.WriteString(reportLine("Head update", w.HeadUpdateID) + "\n")
		if w.HasTail {
			b.WriteString(reportLine("Tail update", w.TailUpdateID) + "\n")
			pending := w.PendingUpdates
			if w.PendingWarning {
				pending = monitor.WarningValueStyle.Render(pending)
			}
			b.WriteString(reportLine("Pending", pending) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func reportValue(spec monitor.FieldSpec, f monitor.Field) string {
	if spec.Group == monitor.GroupMemory {
		return monitor.HumanBytes(f.Text)
	}
	if spec.Kind == monitor.KindCount {
		return monitor.HumanCount(f.Text)
	}
	return f.Text
}

func reportLine(label, value string) string {
	return "  " + monitor.LabelStyle.Render(fmt.Sprintf("%-16s", label)) + " " + value
}
