package api

import (
	"encoding/json"
	"fmt"
)

// Tool is the client-side view of a tool registered on the server.
// The code, schema, rate limit, dependency, and author fields are only
// populated by endpoints that return full tool records.
type Tool struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Version      int             `json:"version"`
	Active       bool            `json:"active"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	Capabilities []string        `json:"capabilities"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
	Code         string          `json:"code,omitempty"`
	Schema       json.RawMessage `json:"schema,omitempty"`
	RateLimit    *RateLimit      `json:"rateLimit,omitempty"`
	Dependencies []string        `json:"dependencies,omitempty"`
	Author       string          `json:"author,omitempty"`
}

// RateLimit caps how often a tool may be called on the server side.
type RateLimit struct {
	MaxCalls int `json:"maxCalls"`
	WindowMs int `json:"windowMs"`
}

// ToolStats is the per-tool execution aggregate kept by the server.
type ToolStats struct {
	TotalCalls        int     `json:"totalCalls"`
	SuccessfulCalls   int     `json:"successfulCalls"`
	FailedCalls       int     `json:"failedCalls"`
	AverageDurationMs float64 `json:"averageDurationMs"`
	LastExecutedAt    string  `json:"lastExecutedAt"`
}

// SuccessRate returns the success percentage as a display string.
// A tool that has never been called reports "0%" rather than dividing by zero.
func (s ToolStats) SuccessRate() string {
	if s.TotalCalls == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.SuccessfulCalls)/float64(s.TotalCalls)*100)
}

// ReloadSummary is returned by the tool reload endpoint.
type ReloadSummary struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// MarketplaceEntry describes an installable tool, from either the local
// marketplace cache or the remote registry. Both endpoints share this shape.
type MarketplaceEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Version     string   `json:"version"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ExportedAt  string   `json:"exportedAt"`
	Owner       string   `json:"owner,omitempty"`
}

// InstallResult reports the outcome of a marketplace install. The Success
// flag, not the HTTP status, decides whether the install worked.
type InstallResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Overview is a single snapshot of server-wide counters.
type Overview struct {
	TotalTools     int     `json:"totalTools"`
	ActiveTools    int     `json:"activeTools"`
	TotalCalls     int     `json:"totalCalls"`
	TotalSuccess   int     `json:"totalSuccess"`
	TotalFailed    int     `json:"totalFailed"`
	CacheHitRate   float64 `json:"cacheHitRate"`
	SchedulesCount int     `json:"schedulesCount"`
	WebhooksCount  int     `json:"webhooksCount"`
	PipelinesCount int     `json:"pipelinesCount"`
	AliasesCount   int     `json:"aliasesCount"`
}

// AuditEntry is one record from the server's audit log. Entries arrive in
// server order and are displayed as-is.
type AuditEntry struct {
	Timestamp  string         `json:"timestamp"`
	Action     string         `json:"action"`
	ToolName   string         `json:"toolName"`
	DurationMs *float64       `json:"durationMs,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// CacheStats summarizes the server-side result cache.
type CacheStats struct {
	TotalEntries int            `json:"totalEntries"`
	Hits         int            `json:"hits"`
	Misses       int            `json:"misses"`
	HitRate      float64        `json:"hitRate"`
	Entries      map[string]int `json:"entries"`
}

// ClearResult reports how many cache entries a clear removed.
type ClearResult struct {
	Cleared int `json:"cleared"`
}

// PermissionRecord is one approved permission for a tool.
type PermissionRecord struct {
	ToolName   string `json:"toolName"`
	Permission string `json:"permission"`
	Approved   bool   `json:"approved"`
	ApprovedAt string `json:"approvedAt"`
}

// ScheduleRecord is one server-side schedule for a tool.
type ScheduleRecord struct {
	ID             string `json:"id"`
	ToolName       string `json:"toolName"`
	CronExpression string `json:"cronExpression"`
	Enabled        bool   `json:"enabled"`
	LastRunAt      string `json:"lastRunAt,omitempty"`
	NextRunAt      string `json:"nextRunAt,omitempty"`
}

// WebhookRecord is one webhook registration on the server.
type WebhookRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Events    []string `json:"events"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"createdAt"`
}

// PipelineRecord is one named sequence of tool invocation steps.
type PipelineRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Steps     []string `json:"steps"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"createdAt"`
}

// SecretRecord is the client-side view of a stored secret. It deliberately
// carries only the name and timestamps: secret values are not representable
// in this type, so they can never reach terminal or --json output even if a
// misbehaving server includes them in the payload.
type SecretRecord struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
