package report

import (
	"encoding/json"
	"io"
	"time"

	"go.trai.ch/reqsync/internal/core/domain"
)

// JSON implements ports.Reporter by writing one JSON document per report.
type JSON struct {
	enc *json.Encoder
}

// NewJSON creates a JSON reporter writing to w.
func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSON{enc: enc}
}

type requirementDoc struct {
	Key         string `json:"key"`
	Requirement string `json:"requirement"`
	Editable    bool   `json:"editable,omitempty"`
	Origin      string `json:"origin,omitempty"`
}

type distributionDoc struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type itemDoc struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Error string `json:"error,omitempty"`
}

type planDoc struct {
	Status    string            `json:"status"`
	Install   []requirementDoc  `json:"install"`
	Uninstall []distributionDoc `json:"uninstall"`
	Unchanged []string          `json:"unchanged"`
	Protected []string          `json:"protected"`
}

type summaryDoc struct {
	Status      string    `json:"status"`
	Uninstalled []itemDoc `json:"uninstalled"`
	Installed   []itemDoc `json:"installed"`
	Failed      int       `json:"failed"`
}

type recordDoc struct {
	Digest      string    `json:"digest"`
	Sources     []string  `json:"sources"`
	Packages    int       `json:"packages"`
	Installed   int       `json:"installed"`
	Uninstalled int       `json:"uninstalled"`
	SyncedAt    time.Time `json:"synced_at"`
}

type statusDoc struct {
	Status        string     `json:"status"`
	CurrentDigest string     `json:"current_digest"`
	Matches       bool       `json:"matches"`
	Record        *recordDoc `json:"record"`
}

// UpToDate writes {"status": "up-to-date"}.
func (j *JSON) UpToDate() {
	j.write(struct {
		Status string `json:"status"`
	}{Status: "up-to-date"})
}

// Plan writes the planned actions.
func (j *JSON) Plan(diff domain.SyncDiff) {
	doc := planDoc{
		Status:    "plan",
		Install:   make([]requirementDoc, 0, len(diff.ToInstall)),
		Uninstall: make([]distributionDoc, 0, len(diff.ToUninstall)),
		Unchanged: keyStrings(diff.Unchanged),
		Protected: keyStrings(diff.Protected),
	}
	for _, r := range diff.ToInstall {
		doc.Install = append(doc.Install, requirementDoc{
			Key:         r.Key.String(),
			Requirement: r.String(),
			Editable:    r.Editable,
			Origin:      r.Origin,
		})
	}
	for _, d := range diff.ToUninstall {
		doc.Uninstall = append(doc.Uninstall, distributionDoc{Key: d.Key.String(), Name: d.Name, Version: d.Version})
	}
	j.write(doc)
}

// Summary writes the outcome of every applied item.
func (j *JSON) Summary(result domain.SyncResult) {
	doc := summaryDoc{
		Status:      "synced",
		Uninstalled: itemDocs(result.Uninstalled),
		Installed:   itemDocs(result.Installed),
		Failed:      len(result.Failures()),
	}
	if doc.Failed > 0 {
		doc.Status = "failed"
	}
	j.write(doc)
}

// Status writes the last sync record and whether it matches currentDigest.
func (j *JSON) Status(record *domain.SyncRecord, currentDigest string) {
	doc := statusDoc{Status: "never-synced", CurrentDigest: currentDigest}
	if record != nil {
		doc.Matches = record.Digest == currentDigest
		doc.Status = "changed"
		if doc.Matches {
			doc.Status = "current"
		}
		doc.Record = &recordDoc{
			Digest:      record.Digest,
			Sources:     record.Sources,
			Packages:    record.Packages,
			Installed:   record.Installed,
			Uninstalled: record.Uninstalled,
			SyncedAt:    record.SyncedAt.UTC(),
		}
	}
	j.write(doc)
}

func (j *JSON) write(v any) {
	_ = j.enc.Encode(v)
}

func itemDocs(items []domain.ItemResult) []itemDoc {
	docs := make([]itemDoc, 0, len(items))
	for _, item := range items {
		doc := itemDoc{Key: item.Key.String(), Label: item.Label}
		if item.Err != nil {
			doc.Error = item.Err.Error()
		}
		docs = append(docs, doc)
	}
	return docs
}

func keyStrings(keys []domain.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}
