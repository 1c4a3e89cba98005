package terminal

import (
	"fmt"
	"strings"
)

const (
	// SystemName is shown in the status bar
	SystemName = "ONYX KERNEL v5.0.1"

	// CorePurpose is the tagline under the logo
	CorePurpose = "Hardening Infrastructure & 10x Digital Growth Engine"
)

// NavItem is one entry of the fixed command vocabulary
type NavItem struct {
	Label       string `yaml:"label" json:"label"`
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
	View        View   `yaml:"view,omitempty" json:"view,omitempty"`
}

// HasView reports whether selecting the item switches the content panel
func (n NavItem) HasView() bool {
	return n.View != ""
}

// Catalog is the ordered navigation vocabulary
type Catalog []NavItem

// DefaultCatalog returns the built-in navigation items
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Label:       "Security",
			Command:     "run pentest_audit",
			Description: "Offensive security: We break in so the bad guys can't.",
			View:        ViewSecurity,
		},
		{
			Label:       "IT-Work",
			Command:     "sysctl --solve-problems",
			Description: `Diagnostic mastery. We eliminate bottlenecks and solve the "unsolvable" tech debt.`,
			View:        ViewITWork,
		},
		{
			Label:       "Web-Dev",
			Command:     "deploy customer_magnet",
			Description: "High-conversion engineering. If your site isn't 10xing your traffic, it's broken. We fix that.",
			View:        ViewWebDev,
		},
		{
			Label:       "Consult",
			Command:     "query intelligence",
			Description: "Direct access to Onyx strategic foresight and technical advisory.",
		},
		{
			Label:       "Contact",
			Command:     "finger onyx_admin",
			Description: "Secure line to Cristian Acevedo.",
		},
	}
}

// Lookup finds the item whose command equals the normalized input
func (c Catalog) Lookup(normalized string) (NavItem, bool) {
	for _, item := range c {
		if strings.ToLower(item.Command) == normalized {
			return item, true
		}
	}
	return NavItem{}, false
}

// Validate checks that every item is usable
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	for i, item := range c {
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("navigation item %d: label is required", i)
		}
		cmd := strings.ToLower(strings.TrimSpace(item.Command))
		if cmd == "" {
			return fmt.Errorf("navigation item %q: command is required", item.Label)
		}
		if seen[cmd] {
			return fmt.Errorf("navigation item %q: duplicate command %q", item.Label, item.Command)
		}
		seen[cmd] = true
		if item.HasView() {
			if _, err := ParseView(string(item.View)); err != nil {
				return fmt.Errorf("navigation item %q: %w", item.Label, err)
			}
		}
	}
	return nil
}

// ContactCard is the static operator card revealed by the contact side channel
type ContactCard struct {
	Operator string `yaml:"operator" json:"operator"`
	Phone    string `yaml:"phone" json:"phone"`
	Email    string `yaml:"email" json:"email"`
}

// DefaultContactCard returns the built-in operator card
func DefaultContactCard() ContactCard {
	return ContactCard{
		Operator: "Cristian Acevedo",
		Phone:    "651-717-5556",
		Email:    "cristian007@acevedoonyx.net",
	}
}

// Lines renders the card as the four system entries the interpreter logs
func (c ContactCard) Lines() []string {
	return []string{
		"--- SECURE CONTACT CHANNEL ---",
		"OPERATOR: " + c.Operator,
		"DIRECT LINE: " + c.Phone,
		"SECURE MAIL: " + c.Email,
	}
}
