// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/cyferkey/models"
)

func renderActivity(rows []models.Activity) string {
	if len(rows) == 0 {
		return renderPage("SYNC ACTIVITY", "No requests yet.", "esc: back")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-19s  %-11s  %-6s  %s\n", "TIME", "ROUTE", "STATUS", "WEBSITE")
	for i, a := range rows {
		fmt.Fprintf(&b, "%-19s  %-11s  %-6d  %s",
			a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			a.Route,
			a.Status,
			fitText(a.Key, 32),
		)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return renderPage("SYNC ACTIVITY", b.String(), "esc: back")
}
