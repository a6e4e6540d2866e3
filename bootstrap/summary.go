package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/aigateway/component"
)

// Summary is the startup report printed once the service is ready.
type Summary struct {
	serviceName     string
	version         string
	environment     string
	startupDuration time.Duration
	components      []component.Description
	routes          []component.Route
	health          []component.Health
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version, environment string) *Summary {
	return &Summary{serviceName: serviceName, version: version, environment: environment}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Collect gathers descriptions, routes and live health from the registry.
// Components that are not Describable are listed by name.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	s.components, s.routes, s.health = nil, nil, nil
	if registry == nil {
		return
	}
	for _, c := range registry.All() {
		desc := component.Description{Name: c.Name()}
		if d, ok := c.(component.Describable); ok {
			desc = d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
		}
		s.components = append(s.components, desc)
		if rp, ok := c.(component.RouteProvider); ok {
			s.routes = append(s.routes, rp.Routes()...)
		}
	}
	s.health = registry.HealthAll(ctx)
}

// Write renders the summary as a tree.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "\n%s v%s (%s) started in %.2fs\n", s.serviceName, s.version, s.environment, s.startupDuration.Seconds())

	if len(s.components) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}

	fmt.Fprintf(w, "\nComponents\n")
	for i, d := range s.components {
		line := d.Name
		if d.Type != "" {
			line += " [" + d.Type + "]"
		}
		if d.Details != "" {
			line += ": " + d.Details
		}
		fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(s.components)), line)
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s -> %s\n", treePrefix(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if len(s.health) > 0 {
		fmt.Fprintf(w, "\nHealth (%s)\n", component.Aggregate(s.health))
		for i, h := range s.health {
			msg := ""
			if h.Message != "" {
				msg = " (" + h.Message + ")"
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(s.health)), healthIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
		}
	}
	fmt.Fprintln(w)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "[ok]"
	case component.StatusDegraded:
		return "[!!]"
	case component.StatusUnhealthy:
		return "[xx]"
	default:
		return "[??]"
	}
}
