/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package nodeinfo builds NodeInfo (http://nodeinfo.diaspora.software)
// documents and the well-known discovery document that links to them: a thin
// translation from the host application's registered metadata to the wire
// JSON.
package nodeinfo

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("nodeinfo")

// UsageCounts reports the per-instance activity counts NodeInfo surfaces. A
// host application with no interest in publishing these may leave it
// zero-valued.
type UsageCounts struct {
	Users         int
	LocalPosts    int
	LocalComments int
}

// Config describes the instance NodeInfo documents this package builds.
type Config struct {
	SoftwareName      string
	SoftwareVersion   string
	Repository        string
	OpenRegistrations bool

	// UsageFunc is called once per request so usage figures reflect live
	// counts; a nil UsageFunc reports all zeros.
	UsageFunc func() UsageCounts
}

func (c Config) usage() UsageCounts {
	if c.UsageFunc == nil {
		return UsageCounts{}
	}

	return c.UsageFunc()
}

// Build returns the NodeInfo document for the given schema version.
func Build(version Version, cfg Config) *NodeInfo {
	usage := cfg.usage()

	return &NodeInfo{
		Version:   version,
		Protocols: []string{activityPubProtocol},
		Software: Software{
			Name:       cfg.SoftwareName,
			Version:    cfg.SoftwareVersion,
			Repository: cfg.Repository,
		},
		Services: Services{
			Inbound:  []string{},
			Outbound: []string{},
		},
		OpenRegistrations: cfg.OpenRegistrations,
		Usage: Usage{
			Users:         Users{Total: usage.Users},
			LocalPosts:    usage.LocalPosts,
			LocalComments: usage.LocalComments,
		},
	}
}

// Handler serves the NodeInfo document itself at the route the host
// registered as "nodeInfo".
func Handler(version Version, cfg Config) http.HandlerFunc {
	contentType := fmt.Sprintf(`application/json; profile="http://nodeinfo.diaspora.software/ns/schema/%s#"`, version)

	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := json.Marshal(Build(version, cfg))
		if err != nil {
			logger.Error("Marshal NodeInfo document", log.WithError(err))
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(body); err != nil {
			log.WriteResponseBodyError(logger, err)
		}
	}
}

// discoveryDoc is the /.well-known/nodeinfo response: a list of links to
// the NodeInfo document(s) this instance serves, keyed by schema version.
type discoveryDoc struct {
	Links []discoveryLink `json:"links"`
}

type discoveryLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// DiscoveryHandler serves the "nodeInfoJrd" route: the well-known document
// that points at nodeInfoURL for the given schema version.
func DiscoveryHandler(version Version, nodeInfoURL string) http.HandlerFunc {
	doc := &discoveryDoc{
		Links: []discoveryLink{
			{
				Rel:  fmt.Sprintf("http://nodeinfo.diaspora.software/ns/schema/%s", version),
				Href: nodeInfoURL,
			},
		},
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := json.Marshal(doc)
		if err != nil {
			logger.Error("Marshal NodeInfo discovery document", log.WithError(err))
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(body); err != nil {
			log.WriteResponseBodyError(logger, err)
		}
	}
}
