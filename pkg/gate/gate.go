// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package gate implements the perimeter check for interactive requests. It
// only looks at the request path and the presence of a session cookie. Token
// validity is checked later by the authentication middleware on the routes
// that need a subject.
package gate

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

type Decision int

const (
	// DecisionPassThrough lets the request continue untouched.
	DecisionPassThrough Decision = iota
	// DecisionPublic lets the request continue because the path is on the
	// public allowlist.
	DecisionPublic
	// DecisionRedirect bounces the request to the login destination.
	DecisionRedirect
)

// DefaultPublicPaths are reachable without a session credential. The
// ingestion and poll endpoints are called by the backend and by pollers that
// carry bearer tokens, not browser cookies, so they must stay listed here.
var DefaultPublicPaths = []string{
	"/login",
	"/signup",
	"/password-reset",
	"/invite",
	"/api/auth",
	"/api/invite",
	"/api/call-ended",
	"/api/call-updates",
	"/api/bot-config",
	"/api/v0/status",
	"/api/v0/version",
	"/api/v0/metrics",
}

const defaultStaticPrefix = "/static"

// Verdict is the outcome of classifying a single request.
type Verdict struct {
	Decision Decision
	// Target is the redirect destination, set only for DecisionRedirect.
	Target string
}

var _ GateInterface = (*Gate)(nil)

type Gate struct {
	publicPaths  []string
	staticPrefix string
	loginRoute   string
}

// Decide is a pure function of its inputs, it holds no mutable state and is
// safe to call from any number of requests concurrently.
func (g *Gate) Decide(requestPath string, hasCredential bool) Verdict {
	if g.isStatic(requestPath) {
		return Verdict{Decision: DecisionPassThrough}
	}

	if g.isPublic(requestPath) {
		return Verdict{Decision: DecisionPublic}
	}

	if hasCredential {
		return Verdict{Decision: DecisionPassThrough}
	}

	target := fmt.Sprintf("%s?redirect=%s", g.loginRoute, url.QueryEscape(requestPath))
	return Verdict{Decision: DecisionRedirect, Target: target}
}

func (g *Gate) isPublic(requestPath string) bool {
	for _, p := range g.publicPaths {
		if requestPath == p || strings.HasPrefix(requestPath, p+"/") {
			return true
		}
	}
	return false
}

func (g *Gate) isStatic(requestPath string) bool {
	if requestPath == g.staticPrefix || strings.HasPrefix(requestPath, g.staticPrefix+"/") {
		return true
	}
	return path.Ext(requestPath) != ""
}

func NewGate(publicPaths []string, loginRoute string) *Gate {
	g := new(Gate)

	g.publicPaths = publicPaths
	if len(g.publicPaths) == 0 {
		g.publicPaths = DefaultPublicPaths
	}

	g.loginRoute = loginRoute
	if g.loginRoute == "" {
		g.loginRoute = "/login"
	}

	g.staticPrefix = defaultStaticPrefix

	return g
}
