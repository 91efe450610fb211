// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package certbot

import (
	"strings"
)

// Certificate is one entry parsed from `certbot certificates` output.
type Certificate struct {
	// Name is the certificate's lineage name.
	Name string

	// Domains covered by the certificate.
	Domains []string

	// Expiry is certbot's expiry line verbatim, including the
	// (VALID: ...) annotation.
	Expiry string
}

// ParseCertificates extracts certificate entries from certbot's
// human-oriented `certificates` listing.
//
// The format is line-oriented with labelled fields under each
// "Certificate Name:" heading. Unrecognized lines are skipped, so new
// certbot fields do not break the parse.
func ParseCertificates(output string) []Certificate {
	var certs []Certificate
	var current *Certificate

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Certificate Name:"):
			if current != nil {
				certs = append(certs, *current)
			}
			current = &Certificate{Name: fieldValue(trimmed)}
		case current == nil:
			// Preamble before the first entry.
		case strings.HasPrefix(trimmed, "Domains:"):
			current.Domains = strings.Fields(fieldValue(trimmed))
		case strings.HasPrefix(trimmed, "Expiry Date:"):
			current.Expiry = fieldValue(trimmed)
		}
	}
	if current != nil {
		certs = append(certs, *current)
	}
	return certs
}

// fieldValue returns the text after the first colon, trimmed.
func fieldValue(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}
