package terminal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/monitor"
)

// DefaultDeepDiveDelay is how long navigation waits before asking for commentary
const DefaultDeepDiveDelay = 800 * time.Millisecond

var queryPrefix = regexp.MustCompile(`^(query|ask)\s+`)

// Intelligence answers free-text prompts. Implementations must always return
// displayable text and never fail.
type Intelligence interface {
	Query(ctx context.Context, prompt string) string
}

// Options configures an Interpreter
type Options struct {
	Catalog       Catalog
	Contact       ContactCard
	DeepDiveDelay time.Duration
	// DropStaleCommentary discards a deep dive that resolves after the user
	// has navigated again.
	DropStaleCommentary bool
	Logger              *logger.Logger
	Metrics             *monitor.Collector
}

// Interpreter turns one line of input into state changes and log entries
type Interpreter struct {
	session *Session
	intel   Intelligence
	opts    Options
	log     *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewInterpreter creates an interpreter bound to session
func NewInterpreter(session *Session, intel Intelligence, opts Options) *Interpreter {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Contact == (ContactCard{}) {
		opts.Contact = DefaultContactCard()
	}
	if opts.DeepDiveDelay < 0 {
		opts.DeepDiveDelay = 0
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Interpreter{
		session: session,
		intel:   intel,
		opts:    opts,
		log:     log.WithComponent("interpreter"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Catalog returns the navigation vocabulary in use
func (i *Interpreter) Catalog() Catalog {
	return i.opts.Catalog
}

// Contact returns the operator card revealed by the contact side channel
func (i *Interpreter) Contact() ContactCard {
	return i.opts.Contact
}

// Handle interprets raw. It never fails; every outcome is reported through
// the log. Queries and deep dives complete in the background.
func (i *Interpreter) Handle(raw string) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return
	}

	start := time.Now()
	defer func() { i.opts.Metrics.Record(monitor.OperationCommand, time.Since(start), nil) }()

	i.session.Append(raw, CategoryCommand)

	switch {
	case normalized == "clear":
		i.log.Debug("dispatch", logger.F("rule", "clear"))
		i.session.Clear()

	case isReturnHome(normalized):
		i.log.Debug("dispatch", logger.F("rule", "home"))
		i.session.navigate(ViewDashboard, true)
		i.session.Append("Returning to main dashboard...", CategorySystem)

	case normalized == "help":
		i.log.Debug("dispatch", logger.F("rule", "help"))
		for _, line := range HelpLines(i.opts.Catalog) {
			i.session.Append(line, CategorySystem)
		}

	case isContactRequest(normalized):
		i.log.Debug("dispatch", logger.F("rule", "contact"))
		for _, line := range i.opts.Contact.Lines() {
			i.session.Append(line, CategorySystem)
		}

	case strings.HasPrefix(normalized, "query "), strings.HasPrefix(normalized, "ask "):
		i.query(queryPrefix.ReplaceAllString(normalized, ""))

	default:
		if item, ok := i.opts.Catalog.Lookup(normalized); ok {
			i.navigate(item)
			return
		}
		i.log.Debug("dispatch", logger.F("rule", "unknown"), logger.F("input", normalized))
		i.session.Append(fmt.Sprintf("CMD_ERR: '%s' is not recognized. Check 'help'.", normalized), CategoryError)
	}
}

// Wait blocks until every outstanding query and deep dive has settled
func (i *Interpreter) Wait() {
	i.wg.Wait()
}

// Close cancels outstanding background work and waits for it to exit
func (i *Interpreter) Close() {
	i.cancel()
	i.wg.Wait()
}

func (i *Interpreter) query(prompt string) {
	i.log.Debug("dispatch", logger.F("rule", "query"), logger.F("prompt", prompt))

	i.session.SetStatus(StatusProcessing)
	i.session.Append(`Querying Onyx Intelligence for: "`+prompt+`"...`, CategorySystem)

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		start := time.Now()
		response := i.intel.Query(i.ctx, prompt)
		i.log.Debug("query settled", logger.Duration(time.Since(start)))

		i.session.Append(response, CategoryAI)
		i.session.SetStatus(StatusReady)
	}()
}

func (i *Interpreter) navigate(item NavItem) {
	i.log.Debug("dispatch", logger.F("rule", "navigate"), logger.F("label", item.Label))

	serial := i.session.navigate(item.View, item.HasView())
	i.session.Append("Executing protocol for "+item.Label+"...", CategorySystem)

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		timer := time.NewTimer(i.opts.DeepDiveDelay)
		defer timer.Stop()
		select {
		case <-i.ctx.Done():
			return
		case <-timer.C:
		}

		start := time.Now()
		response := i.intel.Query(i.ctx, DeepDivePrompt(item.Label))
		i.opts.Metrics.Record(monitor.OperationDeepDive, time.Since(start), nil)
		if i.opts.DropStaleCommentary && i.session.navigationSerial() != serial {
			i.log.Debug("dropping stale deep dive", logger.F("label", item.Label))
			return
		}
		i.session.Append(response, CategoryAI)
	}()
}

// HelpLines renders the command catalogue shown by "help"
func HelpLines(catalog Catalog) []string {
	lines := make([]string, 0, len(catalog)+3)
	lines = append(lines, "ONYX OPERATIONAL COMMANDS:")
	for _, item := range catalog {
		lines = append(lines, fmt.Sprintf("  - %s: %s", item.Command, item.Description))
	}
	return append(lines,
		"  - dashboard: Return to main view",
		"  - query [prompt]: Consult Onyx Intelligence",
	)
}

// DeepDivePrompt is the commentary request issued after navigating to label
func DeepDivePrompt(label string) string {
	return fmt.Sprintf("Deep dive into Onyx %s capabilities. Focus on solving deep system issues, "+
		"high-reliability I.T., and building web platforms that drive 10x customer conversion.", label)
}

func isReturnHome(normalized string) bool {
	switch normalized {
	case "dashboard", "exit", "home":
		return true
	}
	return false
}

// isContactRequest matches by substring, so any input mentioning "admin"
// reveals the card.
func isContactRequest(normalized string) bool {
	return strings.Contains(normalized, "admin") ||
		strings.Contains(normalized, "contact") ||
		strings.Contains(normalized, "onyx_admin")
}
