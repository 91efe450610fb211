// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

func runSSLIssue(cmd *cobra.Command, args []string) {
	if err := issueCertificate(args[0]); err != nil {
		fail(err)
	}
}

func issueCertificate(domain string) error {
	if err := application.certbot.CheckInstalled(); err != nil {
		return err
	}
	ux.Info("Requesting a certificate for %s (certbot binds ports 80/443 itself)", domain)
	if err := application.certbot.Issue(context.Background(), domain); err != nil {
		application.log.Error("certificate issuance failed", "domain", domain, "error", err)
		return err
	}
	application.log.Info("certificate issued", "domain", domain)
	ux.Success("Certificate issued for %s", domain)
	return nil
}

func runSSLRenew(cmd *cobra.Command, args []string) {
	if err := renewCertificates(); err != nil {
		fail(err)
	}
}

func renewCertificates() error {
	if err := application.certbot.CheckInstalled(); err != nil {
		return err
	}
	if err := application.certbot.Renew(context.Background()); err != nil {
		application.log.Error("certificate renewal failed", "error", err)
		return err
	}
	application.log.Info("certificates renewed")
	ux.Success("Renewal complete")
	return nil
}

func runSSLList(cmd *cobra.Command, args []string) {
	if err := listCertificates(); err != nil {
		fail(err)
	}
}

func listCertificates() error {
	if err := application.certbot.CheckInstalled(); err != nil {
		return err
	}
	certs, err := application.certbot.List(context.Background())
	if err != nil {
		return err
	}
	if len(certs) == 0 {
		ux.Warn("No certificates found")
		return nil
	}
	ux.Title("Certificates")
	for _, c := range certs {
		fmt.Printf("%s\n  Domains: %s\n  Expiry:  %s\n", c.Name, strings.Join(c.Domains, " "), c.Expiry)
	}
	return nil
}
