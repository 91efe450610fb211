// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package certbot wraps the certbot binary for standalone certificate
// issuance, renewal and inventory listing.
//
// Certbot binds ports 80/443 itself during issuance; no web server is
// managed here. Certificate cryptography is entirely certbot's problem.
package certbot

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

var validate = validator.New()

// ValidateDomain checks that domain is a well-formed fully qualified
// domain name before it is handed to certbot.
func ValidateDomain(domain string) error {
	if err := validate.Var(domain, "required,fqdn"); err != nil {
		return fmt.Errorf("invalid domain %q: must be a fully qualified domain name", domain)
	}
	return nil
}

// Client shells out to certbot. Issuance and renewal run interactively
// so certbot's own prompts and progress reach the terminal.
type Client struct {
	proc  process.Manager
	email string
}

// New creates a Client. email is the registration contact passed to
// certonly; empty means certbot will prompt for one.
func New(proc process.Manager, email string) *Client {
	return &Client{proc: proc, email: email}
}

// CheckInstalled verifies the certbot binary is on PATH.
func (c *Client) CheckInstalled() error {
	if _, err := c.proc.LookPath("certbot"); err != nil {
		return fmt.Errorf("certbot is not installed: %w", err)
	}
	return nil
}

// Issue obtains a certificate for the domain using the standalone
// authenticator. The domain must already validate as an fqdn.
func (c *Client) Issue(ctx context.Context, domain string) error {
	if err := ValidateDomain(domain); err != nil {
		return err
	}
	args := []string{"certonly", "--standalone", "-d", domain, "--agree-tos", "--non-interactive"}
	if c.email != "" {
		args = append(args, "--email", c.email)
	} else {
		args = append(args, "--register-unsafely-without-email")
	}
	return c.proc.RunInteractive(ctx, process.Spec{Name: "certbot", Args: args})
}

// Renew renews every certificate that is due.
func (c *Client) Renew(ctx context.Context) error {
	return c.proc.RunInteractive(ctx, process.Spec{Name: "certbot", Args: []string{"renew"}})
}

// List returns the parsed certificate inventory.
func (c *Client) List(ctx context.Context) ([]Certificate, error) {
	res, err := c.proc.Run(ctx, process.Spec{Name: "certbot", Args: []string{"certificates"}})
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, process.NewCommandError("certbot certificates", res.ExitCode, res.Stderr, nil)
	}
	return ParseCertificates(res.Stdout), nil
}
