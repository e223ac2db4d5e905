// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/EditGate/pkg/ux"
	"github.com/AleutianAI/EditGate/services/edit_gate/advisory"
)

// renderAdvisory prints one advisory for humans.
//
// The hook surface emits advisory text byte-exact for the agent; here the
// same text is dressed up for a terminal instead.
func renderAdvisory(file string, adv advisory.Advisory) {
	if adv.Clean() {
		ux.FileStatus(file, ux.IconSuccess, "")
		return
	}

	ux.FileStatus(file, ux.IconWarning, "issues found")
	for _, section := range []string{adv.StubSection, adv.LintSection} {
		if section == "" {
			continue
		}
		for _, line := range strings.Split(section, "\n") {
			if line == "" {
				continue
			}
			ux.Info(line)
		}
	}
	fmt.Println()
}
