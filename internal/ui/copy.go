package ui

import (
	"strings"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// Logo is the banner drawn at the top of the console
const Logo = `
 ██████  ███▄    █ ▓██   ██▓ ▒██   ██▒
▒██    ▒  ██ ▀█   █  ▒██  ██▒ ▒▒ █ █ ▒░
░ ▓██▄   ▓██  ▀█ ██▒  ▒██ ██░ ░░  █   ░
  ▒   ██▒▓██▒  ▐▌██▒  ░ ▐██▓░  ░ █ █ ▒
▒██████▒▒▒██░   ▓██░  ░ ██▒▓░ ▒██▒ ▒██▒
▒ ▒▓▒ ▒ ░░ ▒░   ▒ ▒    ██▒▒▒  ▒▒ ░ ░▓ ░
░ ░▒  ░ ░░ ░░   ░ ▒░ ▓██ ░▒░  ░░   ░▒ ░
░  ░  ░     ░   ░ ░  ▒ ▒ ░░    ░    ░
      ░           ░  ░ ░       ░    ░
                     ░ ░`

// Footer is the tagline row under the panels
var Footer = []string{"DIAGNOSED", "RESOLVED", "ENCRYPTED", "SCALED", "MONETIZED"}

// Point is one highlighted item of a view's copy
type Point struct {
	Title string
	Text  string
}

// ViewCopy is the static content shown next to the terminal for a view
type ViewCopy struct {
	Title  string
	Body   string
	Points []Point
	// Contact lines appended at the bottom, if any
	Contact []string
}

// CopyFor returns the content panel for v
func CopyFor(v terminal.View, card terminal.ContactCard) ViewCopy {
	switch v {
	case terminal.ViewITWork:
		return ViewCopy{
			Title: "IT PROBLEM SOLVING",
			Body: "When your system fails, your revenue stops. Most IT firms just \"reboot.\" " +
				"Onyx performs surgical forensics to find the root cause: kernel instability, " +
				"network micro-stutters, or silent tech debt. We solve the problems other guys call \"unfixable.\"",
			Points: []Point{
				{"[01] DIAGNOSTIC MASTERY", "We analyze data flows and system logs to identify exactly where your performance is leaking."},
				{"[02] INFRASTRUCTURE STABILITY", "Transforming chaotic setups into high-availability environments with 99.9% uptime."},
				{"[03] GHOST-IN-THE-MACHINE FIXES", "Intermittent crashes? Slow network? We dive into the deep stack to optimize the core."},
			},
		}
	case terminal.ViewWebDev:
		return ViewCopy{
			Title: "WEB ENGINEERING",
			Body: "A website isn't just a design. It's your best salesperson. If your site is slow, " +
				"confusing, or non-existent, you are throwing away leads. Onyx builds customer magnets " +
				"optimized for 10x engagement.",
			Points: []Point{
				{"EVERY CLICK SHOULD LEAD SOMEWHERE", "We use behavioral data to create sites that convert."},
				{"OUTDATED WEBSITES LOSE CUSTOMERS", "We build modern, high-performance sites that inspire trust and drive action."},
				{"RESULTS YOU CAN MEASURE", "Digital Growth Engine"},
			},
		}
	case terminal.ViewSecurity:
		return ViewCopy{
			Title: "SECURITY PROTOCOLS",
			Body:  "Offensive security audits to ensure your business remains bulletproof. We break your system so no one else can.",
			Points: []Point{
				{"PENTESTING & PATCHING", "Immediate identification and resolution of loopholes before they become disasters."},
			},
			Contact: []string{
				"DIRECT SECURE CHANNEL",
				"EMAIL: " + card.Email,
				"PHONE: " + card.Phone,
				"Operator: " + card.Operator,
			},
		}
	default:
		return ViewCopy{
			Title: "PROBLEMS SOLVED. CONVERT MORE VISITORS INTO REVENUE.",
			Body: "\"The business you need isn't the one that just works. It's the one that scales and stays secure.\"\n" +
				"  Onyx Strategic Intelligence",
			Points: []Point{
				{"SYSTEM_INTEGRITY: IT & Problem Solving", "Stabilizing complex environments and solving \"unfixable\" tech debt."},
				{"GROWTH_ENGINE: Web Dev & 10x ROI", "Conversion-first websites that turn traffic into revenue."},
			},
			Contact: []string{
				"SECURE COMMAND CENTER",
				"OPERATOR      " + card.Operator,
				"COMMS         " + card.Phone,
				"SECURE EMAIL  " + card.Email,
			},
		}
	}
}

// PanelTitle is the label of the terminal panel for v
func PanelTitle(v terminal.View) string {
	if v == terminal.ViewDashboard || v == "" {
		return "ONYX_ROOT_ACCESS"
	}
	return "ONYX_" + strings.ToUpper(string(v)) + "_MODE"
}

// Placeholder is the input hint for status st
func Placeholder(st terminal.Status) string {
	if st == terminal.StatusProcessing {
		return "ANALYZING PACKETS..."
	}
	return "onyx@admin:~$"
}
