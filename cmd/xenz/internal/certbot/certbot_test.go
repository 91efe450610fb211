// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package certbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

const sampleListing = `Saving debug log to /var/log/letsencrypt/letsencrypt.log

- - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -
Found the following certs:
  Certificate Name: example.com
    Serial Number: 4a5b6c
    Key Type: ECDSA
    Domains: example.com www.example.com
    Expiry Date: 2026-11-12 08:30:00+00:00 (VALID: 73 days)
    Certificate Path: /etc/letsencrypt/live/example.com/fullchain.pem
    Private Key Path: /etc/letsencrypt/live/example.com/privkey.pem
  Certificate Name: api.example.com
    Serial Number: 7d8e9f
    Key Type: RSA
    Domains: api.example.com
    Expiry Date: 2026-09-03 14:00:00+00:00 (VALID: 3 days)
    Certificate Path: /etc/letsencrypt/live/api.example.com/fullchain.pem
    Private Key Path: /etc/letsencrypt/live/api.example.com/privkey.pem
- - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -
`

func TestParseCertificates(t *testing.T) {
	certs := ParseCertificates(sampleListing)

	require.Len(t, certs, 2)
	assert.Equal(t, "example.com", certs[0].Name)
	assert.Equal(t, []string{"example.com", "www.example.com"}, certs[0].Domains)
	assert.Equal(t, "2026-11-12 08:30:00+00:00 (VALID: 73 days)", certs[0].Expiry)
	assert.Equal(t, "api.example.com", certs[1].Name)
	assert.Equal(t, []string{"api.example.com"}, certs[1].Domains)
}

func TestParseCertificatesEmpty(t *testing.T) {
	assert.Empty(t, ParseCertificates("No certificates found.\n"))
	assert.Empty(t, ParseCertificates(""))
}

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		wantErr bool
	}{
		{"plain", "example.com", false},
		{"subdomain", "api.staging.example.com", false},
		{"bare word", "localhost", true},
		{"empty", "", true},
		{"scheme", "https://example.com", true},
		{"trailing space", "example.com ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIssueArgs(t *testing.T) {
	proc := &process.FakeManager{}
	c := New(proc, "ops@example.com")

	err := c.Issue(context.Background(), "example.com")

	require.NoError(t, err)
	call := proc.LastCall()
	assert.Equal(t, "certbot", call.Name)
	assert.Equal(t, []string{
		"certonly", "--standalone", "-d", "example.com",
		"--agree-tos", "--non-interactive", "--email", "ops@example.com",
	}, call.Args)
}

func TestIssueRejectsBadDomainBeforeAnyCall(t *testing.T) {
	proc := &process.FakeManager{}
	c := New(proc, "")

	err := c.Issue(context.Background(), "not a domain")

	assert.Error(t, err)
	assert.Empty(t, proc.Calls())
}

func TestListParsesOutput(t *testing.T) {
	proc := &process.FakeManager{
		Handler: func(spec process.Spec) (*process.Result, error) {
			return &process.Result{ExitCode: 0, Stdout: sampleListing}, nil
		},
	}
	c := New(proc, "")

	certs, err := c.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, certs, 2)
	assert.Equal(t, []string{"certificates"}, proc.LastCall().Args)
}
